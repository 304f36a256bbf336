package journal

// NewStoreWithAdapter exposes the adapter-level constructor to the external tests.
var NewStoreWithAdapter = newStore
