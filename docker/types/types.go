// package types defines structs for unmarshaling the output of various `docker` commands.
package types

// PSEntry is one line of `docker ps --format '{{json .}}'` output.
type PSEntry struct {
	ID     string `json:"ID"`
	Names  string `json:"Names"`
	Image  string `json:"Image"`
	State  string `json:"State"`
	Status string `json:"Status"`
	Labels string `json:"Labels"`
}

// ContainerDetail is one element of `docker inspect` output.
type ContainerDetail struct {
	ID     string `json:"Id"`
	Name   string `json:"Name"`
	State  State  `json:"State"`
	Config Config `json:"Config"`
}

type State struct {
	Status  string `json:"Status"`
	Running bool   `json:"Running"`
}

type Config struct {
	Image  string            `json:"Image"`
	User   string            `json:"User"`
	Labels map[string]string `json:"Labels"`
	Env    []string          `json:"Env"`
}
