package options

import (
	"fmt"
	"reflect"
)

// PS are the option flags for `docker ps`.
type PS struct {
	All     bool     `flag:"--all"`      // Show all containers (default shows just running)
	Filter  []string `flag:"--filter"`   // Filter output based on conditions provided
	NoTrunc bool     `flag:"--no-trunc"` // Don't truncate output
	Quiet   bool     `flag:"--quiet"`    // Only display container IDs
}

// ExecContainer are the option flags for `docker exec`.
type ExecContainer struct {
	Detach      bool     `flag:"--detach"`      // Run command in the background
	Env         []string `flag:"--env"`         // Set environment variables (format: key=value)
	Interactive bool     `flag:"--interactive"` // Keep STDIN open even if not attached
	TTY         bool     `flag:"--tty"`         // Allocate a pseudo-TTY
	User        string   `flag:"--user"`        // Username or UID (format: <name|uid>[:<group|gid>])
	WorkDir     string   `flag:"--workdir"`     // Working directory inside the container
}

// ToArgs creates an array of strings that you can pass to exec.Command(...) as CLI args.
// Slice-valued fields repeat the flag once per element.
func ToArgs(s any) []string {
	var ret []string
	st := reflect.TypeOf(s)
	sv := reflect.ValueOf(s)
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		flagName, ok := field.Tag.Lookup("flag")
		if !ok {
			continue
		}
		fv := sv.Field(i)
		if fv.IsZero() {
			continue
		}
		switch field.Type.Kind() {
		case reflect.Bool:
			ret = append(ret, flagName)
		case reflect.Slice:
			for j := 0; j < fv.Len(); j++ {
				ret = append(ret, flagName, fmt.Sprintf("%v", fv.Index(j).Interface()))
			}
		default:
			ret = append(ret, flagName, fmt.Sprintf("%v", fv.Interface()))
		}
	}
	return ret
}
