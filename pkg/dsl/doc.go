/*
Package dsl provides a fluent Go API for declaring pulse networks without
writing wiring text.

	defs, err := dsl.New().
		Broadcaster("broadcaster", "a").
		FlipFlop("a", "inv", "con").
		Conjunction("inv", "b").
		FlipFlop("b", "con").
		Conjunction("con", "output").
		Build()

Build applies the same rules as the text parser, so a network built here
formats to wiring text that parses back to the same definitions.
*/
package dsl
