package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
)

// Operating system constants
const (
	OSDarwin  = "darwin"
	OSWindows = "windows"
	OSLinux   = "linux"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Command constants
const (
	OpenCommand     = "open"
	ExplorerCommand = "explorer"
	XDGOpenCommand  = "xdg-open"
	CmdCommand      = "cmd"
	StartCommand    = "start"
)

// Command parameters
const (
	MacOSSelectFlag    = "-R"
	WindowsSelectParam = "/select,"
	WindowsCmdFlag     = "/c"
)

// File manager names
var (
	LinuxFileManagers = []string{"nautilus", "dolphin", "thunar", "nemo", "pcmanfm"}
)

// Engine leftovers that are never the finished file
var (
	SkippedExtensions = []string{".part", ".ytdl", ".temp"}
)

// DefaultOutputDir returns the process working directory, falling back to the
// user's Downloads directory and finally to ".".
func DefaultOutputDir() string {
	if wd, err := os.Getwd(); err == nil && wd != "" {
		return wd
	}
	if dir, err := GetHomeDownloadsDir(); err == nil {
		return dir
	}
	return "."
}

// GetHomeDownloadsDir returns the standard Downloads directory for the user
func GetHomeDownloadsDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "Downloads"), nil
}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// FindFileWithFallback returns filePath if it exists. Otherwise it looks in the
// same directory for a file with the same base name and any extension, since
// audio extraction replaces the extension of the downloaded stream. The most
// recently modified candidate wins.
func FindFileWithFallback(filePath string) (string, error) {
	if filePath == "" {
		return "", fmt.Errorf("file path is empty")
	}

	if strings.HasPrefix(filePath, "http://") || strings.HasPrefix(filePath, "https://") {
		return "", fmt.Errorf("file path appears to be a URL: %s", filePath)
	}

	if _, err := os.Stat(filePath); err == nil {
		return filePath, nil
	}

	dir := filepath.Dir(filePath)
	baseName := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	type candidate struct {
		path    string
		modUnix int64
	}
	var candidates []candidate

	for _, entry := range entries {
		if entry.IsDir() || isSkipped(entry.Name()) {
			continue
		}
		name := entry.Name()
		if strings.TrimSuffix(name, filepath.Ext(name)) != baseName {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		candidates = append(candidates, candidate{
			path:    filepath.Join(dir, name),
			modUnix: info.ModTime().UnixNano(),
		})
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("file not found: %s", filePath)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].modUnix != candidates[j].modUnix {
			return candidates[i].modUnix > candidates[j].modUnix
		}
		return candidates[i].path < candidates[j].path
	})
	return candidates[0].path, nil
}

// OpenFileInManager opens the file in the system file manager and highlights it
func OpenFileInManager(filePath string) error {
	foundPath, err := FindFileWithFallback(filePath)
	if err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := filepath.Abs(foundPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, MacOSSelectFlag, absPath).Run()
	case OSWindows:
		return exec.Command(ExplorerCommand, WindowsSelectParam, absPath).Run()
	case OSLinux:
		return openFileInManagerLinux(absPath)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

// openFileInManagerLinux opens directory containing file on Linux
// Note: File selection is not standardized on Linux, so we open the parent directory
func openFileInManagerLinux(filePath string) error {
	dir := filepath.Dir(filePath)

	if err := exec.Command(XDGOpenCommand, dir).Run(); err == nil {
		return nil
	}

	for _, fm := range LinuxFileManagers {
		if _, err := exec.LookPath(fm); err == nil {
			return exec.Command(fm, dir).Run()
		}
	}

	return fmt.Errorf("no suitable file manager found")
}

// OpenFileWithDefaultApp opens the file with the default system application
func OpenFileWithDefaultApp(filePath string) error {
	foundPath, err := FindFileWithFallback(filePath)
	if err != nil {
		return fmt.Errorf("file does not exist: %v", err)
	}

	absPath, err := filepath.Abs(foundPath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	switch runtime.GOOS {
	case OSDarwin:
		return exec.Command(OpenCommand, absPath).Run()
	case OSWindows:
		return exec.Command(CmdCommand, WindowsCmdFlag, StartCommand, "", absPath).Run()
	case OSLinux:
		return exec.Command(XDGOpenCommand, absPath).Run()
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}

func isSkipped(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
