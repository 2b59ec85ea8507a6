package entity

import "fmt"

// Describe returns the actor's description block.
func (a *Actor) Describe() []string {
	lines := []string{
		"Name: " + a.Name,
		fmt.Sprintf("Level: %d", a.Level.Current),
		"",
	}
	if !a.IsAlive() {
		return lines[:1]
	}
	lines = append(lines, a.FighterLines()...)
	if len(a.Effects) > 0 {
		lines = append(lines, "Effects:")
		for _, e := range a.Effects {
			lines = append(lines, e.Describe()...)
		}
	}
	return lines
}
