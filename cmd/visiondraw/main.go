package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/analysis"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/app"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/server"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/store"
	"github.com/SaraMustafaCodes/vision-draw-finger-drawing/internal/tray"
)

const serverAddr = ":8080"

func main() {
	fmt.Println("Vision Draw - Finger Drawing")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dbDir := filepath.Join(homeDir, ".visiondraw")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dbDir, "visiondraw.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Sketch analysis is optional; it activates when an endpoint is set.
	var analyzer analysis.Analyzer
	if endpoint := os.Getenv("VISIONDRAW_ANALYSIS_URL"); endpoint != "" {
		analyzer = analysis.NewHTTPAnalyzer(endpoint, os.Getenv("VISIONDRAW_ANALYSIS_KEY"))
		fmt.Println("Sketch analysis enabled")
	}

	// Build the drawing pipeline
	a := app.New(app.Config{
		Store:    st,
		Analyzer: analyzer,
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start drawing pipeline: %v", err)
	}
	defer a.Stop()

	// Find web directory
	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start server
	cfg := server.Config{
		StaticDir: webDir,
		App:       a,
		Store:     st,
		Analyzer:  analyzer,
	}

	srv := server.New(cfg)

	go func() {
		fmt.Printf("Starting server on %s\n", serverAddr)
		if err := srv.ListenAndServe(serverAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// The tray owns the main thread until Quit.
	t := tray.New()
	t.OnToggle(func(enabled bool) {
		a.SetEnabled(enabled)
	})
	t.OnClear(func() {
		a.ResetCanvas()
	})
	t.OnSettings(func() {
		openBrowser("http://localhost" + serverAddr)
	})
	t.OnQuit(func() {
		a.Stop()
	})
	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.visiondraw/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
	// Check relative paths from current working directory
	relativePaths := []string{"web", "../web", "../../web"}
	for _, p := range relativePaths {
		if info, err := os.Stat(p); err == nil && info.IsDir() {
			absPath, err := filepath.Abs(p)
			if err == nil {
				return absPath
			}
			return p
		}
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".visiondraw", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch {
	case fileExists("/usr/bin/open"):
		cmd = exec.Command("open", url)
	case fileExists("/usr/bin/xdg-open"):
		cmd = exec.Command("xdg-open", url)
	default:
		log.Printf("Open %s in your browser", url)
		return
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
