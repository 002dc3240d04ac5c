/*
Package pulsenet simulates networks of components that react to discrete
pulses passed along directed wires.

A network is described one component per line. A line names the component,
optionally prefixed by a kind marker, and lists the components it sends
pulses to:

	broadcaster -> a, b, c
	%a -> b
	%b -> c
	%c -> inv
	&inv -> a

An unprefixed component is a broadcaster and forwards every pulse unchanged.
A "%" component is a flip-flop: it ignores high pulses and toggles on low
ones, emitting high when it turns on and low when it turns off. A "&"
component is a conjunction: it remembers the last pulse from each component
wired to it and emits low only when all of them were high. Destinations that
are never defined are sinks and simply absorb pulses.

# Usage

Pressing the button sends a low pulse to the broadcaster and propagates it,
breadth first, until the network is quiet. RunCycles presses it repeatedly
and multiplies the number of low and high pulses sent:

	net, err := pulsenet.Parse(text)
	if err != nil {
		log.Fatal(err)
	}
	product, err := net.RunCycles(ctx, 1000)

For button counts too large to simulate, the analyzer finds, for each watched
component, the first press on which it emits a high pulse, and combines them
with the least common multiple:

	presses, err := net.SinkPeriod(ctx, "rx")

State persists across presses. Snapshot and Restore let a long run be saved
to one of the stores in pkg/adapters and resumed later.
*/
package pulsenet
