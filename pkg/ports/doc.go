/*
Package ports defines the driven ports (interfaces) for persisting pulse
network state.

These interfaces decouple the simulator from storage backends so that a long
run of button presses can be stopped and resumed from memory, the local
filesystem or Redis.

# Key Interfaces

  - SnapshotStore: Responsible for persisting and loading network Snapshots.
  - Locker: Serializes resume-run-save cycles that share a snapshot key.
*/
package ports
