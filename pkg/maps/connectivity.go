package maps

// Groups returns the connected components of one player's territories under
// six-neighbour adjacency. The grid is not modified.
func Groups(grid *Grid, owner int) [][]Coord {
	visited := make(map[Coord]bool)
	var groups [][]Coord

	for _, start := range grid.Owned(owner) {
		if visited[start.Coord] {
			continue
		}

		// BFS to find all connected cells
		group := make([]Coord, 0)
		queue := []Coord{start.Coord}
		visited[start.Coord] = true

		for len(queue) > 0 {
			c := queue[0]
			queue = queue[1:]
			group = append(group, c)

			for _, n := range grid.Neighbors(c) {
				if visited[n] {
					continue
				}
				if t := grid.At(n); t != nil && t.Owner == owner {
					visited[n] = true
					queue = append(queue, n)
				}
			}
		}

		groups = append(groups, group)
	}

	return groups
}

// LargestGroup returns the size of the player's largest connected group,
// or 0 if the player owns nothing.
func LargestGroup(grid *Grid, owner int) int {
	largest := 0
	for _, group := range Groups(grid, owner) {
		largest = max(largest, len(group))
	}
	return largest
}
