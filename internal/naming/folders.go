package naming

// Anchor records the folder chosen for a show key
type Anchor struct {
	ShowKey string
	Folder  string
}

// FolderMap remembers, for the lifetime of one run, the folder chosen the first
// time each show key was seen. Anchors are kept in insertion order.
type FolderMap struct {
	index   map[string]int
	anchors []Anchor
}

// NewFolderMap creates an empty folder map
func NewFolderMap() *FolderMap {
	return &FolderMap{index: make(map[string]int)}
}

// Resolve returns the anchored folder for key, anchoring candidate if the key is new
func (m *FolderMap) Resolve(key, candidate string) string {
	if i, ok := m.index[key]; ok {
		return m.anchors[i].Folder
	}
	m.index[key] = len(m.anchors)
	m.anchors = append(m.anchors, Anchor{ShowKey: key, Folder: candidate})
	return candidate
}

// Lookup returns the folder anchored for key
func (m *FolderMap) Lookup(key string) (string, bool) {
	i, ok := m.index[key]
	if !ok {
		return "", false
	}
	return m.anchors[i].Folder, true
}

// Anchors returns the anchors in the order they were created
func (m *FolderMap) Anchors() []Anchor {
	return append([]Anchor(nil), m.anchors...)
}
