/*
Package domain contains the core models of the pulse network.

It defines the values that travel through a network (Pulse, Level), the three
component kinds that react to them, and the parsed wiring Definition a
network is built from. The package is kept free of I/O and persistence.

# Key Entities

  - Pulse: one signal in flight, from a source component to a destination.
  - Component: a Broadcaster, FlipFlop or Conjunction with its outbound wiring.
  - Definition: a single parsed wiring line (id, kind, ordered outputs).
  - Snapshot: the mutable state of a network, for persistence and resume.
*/
package domain
