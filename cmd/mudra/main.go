package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ayusman/mudra/internal/app"
	"github.com/ayusman/mudra/internal/config"
	"github.com/ayusman/mudra/internal/perception"
	"github.com/ayusman/mudra/internal/server"
	"github.com/ayusman/mudra/internal/session"
	"github.com/ayusman/mudra/internal/store"
	"github.com/ayusman/mudra/internal/tray"
)

func main() {
	fmt.Println("Mudra - Hand and Pose Tracking")

	cfg, err := config.Load(findConfigFile())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	dbPath, err := cfg.ResolveDBPath()
	if err != nil {
		log.Fatalf("Failed to resolve database path: %v", err)
	}
	st, err := store.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}
	defer st.Close()

	sessionCfg := session.DefaultConfig()
	sessionCfg.Gesture.PinchThreshold = cfg.PinchThreshold
	sessionCfg.Pose.Visibility = cfg.PoseVisibility
	sessionCfg.CanvasWidth = float64(cfg.CanvasWidth)
	sessionCfg.CanvasHeight = float64(cfg.CanvasHeight)

	a := app.New(app.Config{
		Store:        st,
		Session:      sessionCfg,
		CameraID:     cfg.Camera,
		ActiveFPS:    cfg.ActiveFPS,
		IdleFPS:      cfg.IdleFPS,
		MotionThresh: cfg.MotionThreshold,
		Perception: perception.Config{
			MaxHands:      cfg.MaxHands,
			MaxBodies:     cfg.MaxBodies,
			MinConfidence: cfg.MinConfidence,
		},
	})

	webDir := findWebDir()
	if webDir != "" {
		fmt.Printf("Serving static files from: %s\n", webDir)
	}

	srv := server.New(server.Config{
		StaticDir: webDir,
		Store:     st,
		Camera:    a.Camera(),
		Control:   a,
	})

	a.OnUpdate(func(u session.Update) {
		srv.Events().Broadcast(u)
	})

	t := tray.New()
	a.OnLabel(t.SetLastLabel)
	t.OnToggle(a.SetEnabled)
	t.OnOpenUI(func() {
		openBrowser(viewerURL(cfg.ListenAddr))
	})
	t.OnQuit(func() {
		a.Stop()
	})

	if err := a.Start(); err != nil {
		log.Fatalf("Failed to start pipeline: %v", err)
	}
	a.SetEnabled(true)

	go func() {
		fmt.Printf("Starting server on %s\n", cfg.ListenAddr)
		if err := srv.ListenAndServe(cfg.ListenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Blocks until quit
	t.Run()
}

// findConfigFile returns the first config file found: ./config.yaml,
// then ~/.mudra/config.yaml. A missing file just means defaults.
func findConfigFile() string {
	if _, err := os.Stat("config.yaml"); err == nil {
		return "config.yaml"
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(homeDir, ".mudra", "config.yaml")
}

// findWebDir searches for the web directory in common locations.
// It checks: "web", "../web", "../../web", and ~/.mudra/web.
// Returns the first existing directory or empty string if none found.
func findWebDir() string {
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

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}

	homeWebDir := filepath.Join(homeDir, ".mudra", "web")
	if info, err := os.Stat(homeWebDir); err == nil && info.IsDir() {
		return homeWebDir
	}

	return ""
}

// viewerURL turns a listen address into a browsable URL.
func viewerURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if err := cmd.Start(); err != nil {
		log.Printf("Failed to open browser: %v", err)
	}
}
