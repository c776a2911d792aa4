package pwa

// State is what a page learns once a newly installed worker reaches the
// "installed" lifecycle state.
type State string

const (
	// StateCached: first install, assets are now available offline.
	StateCached State = "cached"
	// StateUpdateAvailable: a worker was already controlling the page, so a
	// new version is waiting to take over.
	StateUpdateAvailable State = "update-available"
)

// WorkerInstalled is the only worker lifecycle state that produces a State.
const WorkerInstalled = "installed"

// Observe classifies an installed worker by whether the page already had a
// controlling worker.
func Observe(hadController bool) State {
	if hadController {
		return StateUpdateAvailable
	}
	return StateCached
}

// Classify maps a reported worker lifecycle state to a State. ok is false
// for every lifecycle state other than "installed".
func Classify(workerState string, hadController bool) (state State, ok bool) {
	if workerState != WorkerInstalled {
		return "", false
	}
	return Observe(hadController), true
}
