package sessions

// Repo is the durable key-value storage the Store mirrors its state into.
// Get reports false for a key that was never set or has been deleted.
type Repo interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}
