package session

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"
	"strings"
	"time"
)

// LaunchOptions configures the browser driver process.
type LaunchOptions struct {
	// Headless runs the browser without a visible window. Audits always
	// run headless in practice but the flag is kept for local debugging.
	Headless bool

	// Port specifies the WebSocket port. If 0, the driver auto-selects one.
	Port int

	// ExecutablePath is a custom path to the driver binary.
	ExecutablePath string
}

// driverProcess manages the headless-browser driver subprocess.
type driverProcess struct {
	cmd     *exec.Cmd
	port    int
	wsURL   string
	stopped bool
}

// findDriverBinary locates the browser driver binary: an explicit path,
// then AUDITOR_DRIVER_PATH, then $PATH, then the platform cache dir, then a
// couple of local development locations.
func findDriverBinary(customPath string) (string, error) {
	if customPath != "" {
		if _, err := os.Stat(customPath); err == nil {
			return customPath, nil
		}
	}

	if envPath := os.Getenv("AUDITOR_DRIVER_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
	}

	if path, err := exec.LookPath("auditor-driver"); err == nil {
		return path, nil
	}

	cacheDir := driverCacheDir()
	binaryName := "auditor-driver"
	if runtime.GOOS == "windows" {
		binaryName = "auditor-driver.exe"
	}
	cachePath := filepath.Join(cacheDir, binaryName)
	if _, err := os.Stat(cachePath); err == nil {
		return cachePath, nil
	}

	localPaths := []string{
		filepath.Join(".", "driver", "bin", binaryName),
		filepath.Join("..", "..", "driver", "bin", binaryName),
	}
	for _, p := range localPaths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", ErrDriverNotFound
}

func driverCacheDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Caches", "auditor")
	case "windows":
		if localAppData := os.Getenv("LOCALAPPDATA"); localAppData != "" {
			return filepath.Join(localAppData, "auditor")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "AppData", "Local", "auditor")
	default:
		if xdgCache := os.Getenv("XDG_CACHE_HOME"); xdgCache != "" {
			return filepath.Join(xdgCache, "auditor")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".cache", "auditor")
	}
}

// startDriver launches the driver process and waits for it to announce its
// WebSocket listener on stdout.
func startDriver(ctx context.Context, opts LaunchOptions) (*driverProcess, error) {
	binaryPath, err := findDriverBinary(opts.ExecutablePath)
	if err != nil {
		return nil, err
	}

	args := []string{"serve"}
	if opts.Port > 0 {
		args = append(args, "--port", strconv.Itoa(opts.Port))
	}
	if opts.Headless {
		args = append(args, "--headless")
	}

	cmd := exec.CommandContext(ctx, binaryPath, args...)
	cmd.Stderr = os.Stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("create stdout pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start driver: %w", err)
	}

	wsURL := ""
	port := 0
	scanner := bufio.NewScanner(stdout)
	urlRegex := regexp.MustCompile(`ws://[^:]+:(\d+)`)

	done := make(chan struct{})
	go func() {
		for scanner.Scan() {
			line := scanner.Text()
			if strings.Contains(line, "Server listening on") {
				matches := urlRegex.FindStringSubmatch(line)
				if len(matches) >= 2 {
					wsURL = matches[0]
					port, _ = strconv.Atoi(matches[1])
					close(done)
					return
				}
			}
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(30 * time.Second):
		_ = cmd.Process.Kill()
		return nil, fmt.Errorf("timeout waiting for driver to start")
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		return nil, ctx.Err()
	}

	if wsURL == "" {
		_ = cmd.Process.Kill()
		return nil, fmt.Errorf("failed to parse WebSocket URL from driver output")
	}

	return &driverProcess{cmd: cmd, port: port, wsURL: wsURL}, nil
}

func (p *driverProcess) WebSocketURL() string { return p.wsURL }
func (p *driverProcess) Port() int            { return p.port }

func (p *driverProcess) Stop() error {
	if p.stopped {
		return nil
	}
	p.stopped = true

	if p.cmd == nil || p.cmd.Process == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- p.cmd.Wait() }()

	_ = p.cmd.Process.Signal(os.Interrupt)

	select {
	case <-done:
		return nil
	case <-time.After(5 * time.Second):
		return p.cmd.Process.Kill()
	}
}
