// Package docker builds invocations of the container runtime CLI used by the
// deploy pipelines.
package docker

import (
	"sort"

	"github.com/moonsphere-systems/moonsphere-cli/internal/process"
)

const (
	dockerBin  = "docker"
	composeBin = "docker-compose"
)

// Exec runs a command inside a running container.
func Exec(container string, command ...string) process.Invocation {
	return process.Command(dockerBin, append([]string{"exec", container}, command...)...)
}

// RemoveAll deletes path inside a container.
func RemoveAll(container, path string) process.Invocation {
	return Exec(container, "rm", "-rf", path)
}

// CopyTo copies a host path into a container.
func CopyTo(src, container, dst string) process.Invocation {
	return process.Command(dockerBin, "cp", src, container+":"+dst)
}

// Restart restarts a container.
func Restart(container string) process.Invocation {
	return process.Command(dockerBin, "restart", container)
}

// Build builds an image from the Dockerfile in dir.
func Build(dir, image string, buildArgs map[string]string) process.Invocation {
	args := []string{"build", "-t", image}
	for _, k := range sortedKeys(buildArgs) {
		args = append(args, "--build-arg", k+"="+buildArgs[k])
	}
	args = append(args, ".")
	return process.Command(dockerBin, args...).In(dir)
}

// Tag adds target as an alias of source.
func Tag(source, target string) process.Invocation {
	return process.Command(dockerBin, "tag", source, target)
}

// PushAllTags pushes every local tag of repository.
func PushAllTags(repository string) process.Invocation {
	return process.Command(dockerBin, "push", "--all-tags", repository)
}

// ComposeUp describes a detached docker-compose up.
type ComposeUp struct {
	Project string
	EnvFile string
	File    string
	// Mode is exported to the compose file as ENV_BUILD_MODE.
	Mode string
	// Service is empty to start every service.
	Service string
}

// Invocation renders the compose call.
func (c ComposeUp) Invocation() process.Invocation {
	args := []string{"--project-name", c.Project, "--env-file", c.EnvFile, "-f", c.File, "up", "-d"}
	if c.Service != "" {
		args = append(args, c.Service)
	}
	return process.Command(composeBin, args...).WithEnv("ENV_BUILD_MODE", c.Mode)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
