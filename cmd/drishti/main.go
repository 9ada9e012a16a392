package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ayusman/drishti/internal/app"
	"github.com/ayusman/drishti/internal/engine"
	"github.com/ayusman/drishti/internal/server"
	"github.com/ayusman/drishti/internal/store"
	"github.com/ayusman/drishti/internal/tray"
)

func main() {
	addr := flag.String("addr", ":8080", "HTTP listen address")
	cameraID := flag.Int("camera", 0, "camera device ID")
	noTray := flag.Bool("no-tray", false, "run without the system tray")
	flag.Parse()

	fmt.Println("Drishti - Head Tracking Pointer")

	// Initialize the store
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Fatalf("Failed to get home directory: %v", err)
	}

	dataDir := filepath.Join(homeDir, ".drishti")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	dbPath := filepath.Join(dataDir, "drishti.db")
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	// Build the tracking application
	a := app.New(app.Config{
		Store:     st,
		PluginDir: filepath.Join(dataDir, "plugins"),
		CameraID:  *cameraID,
	})

	if err := a.DiscoverPlugins(); err != nil {
		log.Printf("Plugin discovery failed: %v", err)
	}
	if err := a.LoadActiveProfile(); err != nil {
		log.Printf("Failed to load active profile: %v", err)
	}

	// The pointer hub shares the app's layout tree: clients publish their
	// layout over the same socket the pointer feed arrives on.
	hub := server.NewPointerHub(a.Tree())
	a.SetResultSink(hub.Broadcast)

	// Find web directory
	webDir := findWebDir(dataDir)
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	// Configure and start server
	cfg := server.Config{
		StaticDir:         webDir,
		Store:             st,
		Camera:            a.Camera(),
		Hub:               hub,
		OnProfileActivate: a.ApplyProfile,
		OnBaseline: func(profileID string, b engine.Baseline) {
			a.ApplyBaseline(b)
		},
	}

	srv := server.New(cfg)

	go func() {
		fmt.Printf("Starting server on %s\n", *addr)
		if err := srv.ListenAndServe(*addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start tracking pipeline: %v", err)
	}
	defer a.Stop()
	a.SetEnabled(true)

	if *noTray {
		// Headless mode: block forever on the server goroutine
		select {}
	}

	// The tray owns the main thread (required by systray on macOS)
	t := tray.New()
	t.OnToggle(a.SetEnabled)
	t.OnSettings(func() {
		openBrowser("http://localhost" + *addr)
	})
	t.OnQuit(func() {
		a.Stop()
	})
	a.SetActivationSink(func(act engine.Activation) {
		t.SetLastActivation(act.Target, string(act.Source))
	})

	t.Run()
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.drishti/web.
// Returns the first existing directory or empty string if none found.
func findWebDir(dataDir string) string {
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

	homeWebDir := filepath.Join(dataDir, "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	if err := exec.Command("open", url).Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
