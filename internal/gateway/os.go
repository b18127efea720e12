package gateway

import (
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/declbuild/forge/internal/diag"
)

// OSFileSystem is the production FSGateway backed by the real
// filesystem.
type OSFileSystem struct{}

func NewOSFileSystem() *OSFileSystem { return &OSFileSystem{} }

func (*OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (*OSFileSystem) LastWriteTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}, diag.New(diag.IO, err.Error())
	}
	return info.ModTime(), nil
}

func (*OSFileSystem) Touch(path string) error {
	now := time.Now()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, createErr := os.Create(path)
		if createErr != nil {
			return diag.New(diag.IO, createErr.Error())
		}
		f.Close()
		return nil
	}
	if err := os.Chtimes(path, now, now); err != nil {
		return diag.New(diag.IO, err.Error())
	}
	return nil
}

// OSProcessSpawner runs commands directly via argv, with no shell
// interpretation.
type OSProcessSpawner struct {
	Stdout, Stderr *os.File
}

func NewOSProcessSpawner() *OSProcessSpawner {
	return &OSProcessSpawner{Stdout: os.Stdout, Stderr: os.Stderr}
}

func (s *OSProcessSpawner) Run(cmd []string) (int, error) {
	if len(cmd) == 0 {
		return 0, diag.New(diag.System, "empty command")
	}
	c := exec.Command(cmd[0], cmd[1:]...)
	c.Stdout = s.Stdout
	c.Stderr = s.Stderr
	err := c.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), diag.New(diag.System,
			"command '"+strings.Join(cmd, " ")+"' exited with status "+exitErr.Error())
	}
	return -1, diag.New(diag.System, "command '"+strings.Join(cmd, " ")+"' failed to start: "+err.Error())
}
