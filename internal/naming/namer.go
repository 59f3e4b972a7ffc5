package naming

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/propabilia/argus/internal/models"
)

// UnknownDescription stands in for a certificate whose description could not be read
const UnknownDescription = "Unknown_Item"

// Options are the naming toggles of one run
type Options struct {
	AppendOriginalName bool
	DiscardCOA         bool
}

// GroupPlan is the folder, base name and per-item destinations chosen for one group
type GroupPlan struct {
	Folder       string
	BaseName     string
	Instructions []models.CopyInstruction
}

// Namer derives folder and file names for the groups of one run, in group order.
// It owns the run's FolderMap and tracks every destination it has handed out so
// names planned earlier in the run count as taken.
type Namer struct {
	outputDir string
	opts      Options
	folders   *FolderMap
	exists    func(string) bool
	claimed   map[string]struct{}
}

// NewNamer creates a namer writing below outputDir. A nil exists func checks the filesystem.
func NewNamer(outputDir string, opts Options, exists func(string) bool) *Namer {
	if exists == nil {
		exists = PathExists
	}
	return &Namer{
		outputDir: outputDir,
		opts:      opts,
		folders:   NewFolderMap(),
		exists:    exists,
		claimed:   make(map[string]struct{}),
	}
}

// Folders exposes the run's folder anchors
func (n *Namer) Folders() *FolderMap {
	return n.folders
}

// Plan chooses destinations for every item of a group
func (n *Namer) Plan(index int, g models.Group) GroupPlan {
	coas := g.COAs()

	var primarySKU, baseName string
	if len(coas) == 0 {
		primarySKU = UnknownSKU
		baseName = "Orphan_Prop_" + g[0].Stem()
	} else {
		primary := coas[0]
		primarySKU = primary.SKU
		if primarySKU == "" {
			primarySKU = UnknownSKU
		}
		baseName = primaryBaseName(primary, MergeSKUs(coas))
	}

	folder := n.folders.Resolve(ShowKey(primarySKU), primarySKU)
	targetDir := filepath.Join(n.outputDir, folder)

	plan := GroupPlan{Folder: folder, BaseName: baseName}
	for i, item := range g {
		inst := models.CopyInstruction{
			Group:       index,
			Source:      item.Path,
			Kind:        item.Kind,
			SKU:         item.SKU,
			Description: item.Desc,
		}

		if item.IsCOA() && n.opts.DiscardCOA {
			inst.Status = models.StatusDiscarded
			plan.Instructions = append(plan.Instructions, inst)
			continue
		}

		suffix := strconv.Itoa(i + 1)
		if item.IsCOA() {
			suffix = "COA"
		}

		inst.Destination = n.claim(filepath.Join(targetDir, FileName(baseName, suffix, item.Path, n.opts.AppendOriginalName)))
		inst.Status = models.StatusPlanned
		plan.Instructions = append(plan.Instructions, inst)
	}

	return plan
}

// FileName builds "<base>-<suffix>[_<original stem>]<original ext>"
func FileName(baseName, suffix, originalPath string, appendOriginal bool) string {
	ext := filepath.Ext(originalPath)
	if appendOriginal {
		stem := filepath.Base(originalPath)
		stem = stem[:len(stem)-len(ext)]
		return fmt.Sprintf("%s-%s_%s%s", baseName, suffix, stem, ext)
	}
	return fmt.Sprintf("%s-%s%s", baseName, suffix, ext)
}

// UniquePath returns path, or the first "<stem> (n)<ext>" variant for which exists is false
func UniquePath(path string, exists func(string) bool) string {
	if !exists(path) {
		return path
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := filepath.Base(path)
	stem = stem[:len(stem)-len(ext)]

	for counter := 1; ; counter++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, counter, ext))
		if !exists(candidate) {
			return candidate
		}
	}
}

// PathExists reports whether something exists at path
func PathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func (n *Namer) claim(path string) string {
	unique := UniquePath(path, func(p string) bool {
		if _, ok := n.claimed[p]; ok {
			return true
		}
		return n.exists(p)
	})
	n.claimed[unique] = struct{}{}
	return unique
}

func primaryBaseName(primary models.ScannedItem, mergedSKU string) string {
	if primary.SKU == "" && primary.Desc == "" {
		return "Unknown_" + primary.Stem()
	}
	desc := primary.Desc
	if desc == "" {
		desc = UnknownDescription
	}
	return mergedSKU + "-" + desc
}
