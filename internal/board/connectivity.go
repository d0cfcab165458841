package board

import "letterlinks/internal/domain"

// neighbours are the four orthogonal steps
var neighbours = []domain.Position{
	{Row: -1, Col: 0}, // up
	{Row: 1, Col: 0},  // down
	{Row: 0, Col: -1}, // left
	{Row: 0, Col: 1},  // right
}

// FindConnectedGroups splits the placed tiles into groups connected through horizontal and vertical neighbours.
// Each group holds indexes into placed, in discovery order.
func FindConnectedGroups(placed []domain.PlacedTile) [][]int {
	if len(placed) == 0 {
		return nil
	}
	if len(placed) == 1 {
		return [][]int{{0}}
	}
	byPos := make(map[domain.Position]int, len(placed))
	for i, p := range placed {
		byPos[p.Position] = i
	}
	seen := make([]bool, len(placed))
	var groups [][]int
	for i := range placed {
		if seen[i] {
			continue
		}
		groups = append(groups, addSeenTiles(i, placed, byPos, seen, nil))
	}
	return groups
}

// addSeenTiles does a depth-first search from tile i, appending every reached index to group.
func addSeenTiles(i int, placed []domain.PlacedTile, byPos map[domain.Position]int, seen []bool, group []int) []int {
	seen[i] = true
	group = append(group, i)
	pos := placed[i].Position
	for _, d := range neighbours {
		next := domain.Position{Row: pos.Row + d.Row, Col: pos.Col + d.Col}
		if j, ok := byPos[next]; ok && !seen[j] {
			group = addSeenTiles(j, placed, byPos, seen, group)
		}
	}
	return group
}

// HasSingleGroup reports whether the placed tiles form at most one connected group
func HasSingleGroup(placed []domain.PlacedTile) bool {
	return len(FindConnectedGroups(placed)) <= 1
}
