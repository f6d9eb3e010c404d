package domain

// Invocation is a single call of an external build tool.
type Invocation struct {
	Name string
	Args []string
	Dir  string
	Env  map[string]string
}
