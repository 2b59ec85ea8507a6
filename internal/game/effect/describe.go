package effect

import (
	"fmt"
	"strconv"
)

type describer func(e *Effect) []string

var describers map[Kind]describer

func init() {
	describers = map[Kind]describer{
		KindHeal: func(e *Effect) []string {
			return []string{fmt.Sprintf("Heal amount: %d", e.Amount)}
		},
		KindRestoreMana: func(e *Effect) []string {
			return []string{fmt.Sprintf("Restore mana: %d", e.Amount)}
		},
		KindDamage: func(e *Effect) []string {
			return []string{fmt.Sprintf("%s damage: %s", e.Damage.Type, e.Damage.Value)}
		},
		KindAddConfusion: func(e *Effect) []string {
			return []string{fmt.Sprintf("Confuse turns: %d", e.Turns)}
		},
		KindCombine: func(e *Effect) []string {
			var lines []string
			for _, c := range e.Children {
				lines = append(lines, c.Describe()...)
			}
			return lines
		},
		KindDurable: func(e *Effect) []string {
			turns := "permanent"
			if e.Turns >= 0 {
				turns = strconv.Itoa(e.Turns)
			}
			return append([]string{"Turns: " + turns}, e.Inner.Describe()...)
		},
		KindAddEffect: func(e *Effect) []string {
			return append([]string{"Add effect:"}, e.Inner.Describe()...)
		},
	}
}
