package grouping

import "github.com/propabilia/argus/internal/models"

// Group partitions scanned items, in scan order, into lots.
//
// Items accumulate until a certificate is seen that is not immediately followed by
// another certificate; consecutive certificates stay in one lot so multi-SKU lots
// keep all their pages. Whatever remains at the end forms a final, possibly
// certificate-less, group.
func Group(items []models.ScannedItem) []models.Group {
	var groups []models.Group
	var current models.Group

	for i, item := range items {
		current = append(current, item)
		if !item.IsCOA() {
			continue
		}

		nextIsCOA := i+1 < len(items) && items[i+1].IsCOA()
		if !nextIsCOA {
			groups = append(groups, current)
			current = nil
		}
	}

	if len(current) > 0 {
		groups = append(groups, current)
	}
	return groups
}

// Split separates valid groups from orphans, keeping the order of each
func Split(groups []models.Group) (valid []models.Group, orphans []models.Group) {
	for _, g := range groups {
		if g.Valid() {
			valid = append(valid, g)
		} else {
			orphans = append(orphans, g)
		}
	}
	return valid, orphans
}
