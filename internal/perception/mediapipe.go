package perception

import (
	"bufio"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"gocv.io/x/gocv"

	"github.com/ayusman/mudra/internal/anchor"
	"github.com/ayusman/mudra/internal/landmark"
)

// MediaPipeEngine implements Engine over a Python MediaPipe subprocess
// running the hand and pose landmarkers. Frames go down as
// length-prefixed JPEG, results come back as one JSON line per frame.
type MediaPipeEngine struct {
	config    Config
	cmd       *exec.Cmd
	stdin     io.WriteCloser
	stdout    *bufio.Reader
	mu        sync.Mutex
	started   bool
	idleTimer *time.Timer
}

// NewMediaPipeEngine creates a MediaPipe engine. The Python process is
// started lazily on first detection; a missing service script is the
// engine declaring itself unavailable.
func NewMediaPipeEngine(config Config) (*MediaPipeEngine, error) {
	if findServiceScript() == "" {
		return nil, fmt.Errorf("mediapipe_service.py not found")
	}
	return &MediaPipeEngine{config: config}, nil
}

// Detect sends one frame to the service and parses its result.
func (e *MediaPipeEngine) Detect(frame *gocv.Mat) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.ensureStarted(); err != nil {
		return Result{}, err
	}

	buf, err := gocv.IMEncode(".jpg", *frame)
	if err != nil {
		return Result{}, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := buf.GetBytes()
	length := make([]byte, 4)
	binary.BigEndian.PutUint32(length, uint32(len(data)))

	if _, err := e.stdin.Write(length); err != nil {
		return Result{}, fmt.Errorf("write length: %w", err)
	}
	if _, err := e.stdin.Write(data); err != nil {
		return Result{}, fmt.Errorf("write data: %w", err)
	}

	line, err := e.stdout.ReadString('\n')
	if err != nil {
		return Result{}, fmt.Errorf("read response: %w", err)
	}

	var response serviceResponse
	if err := json.Unmarshal([]byte(line), &response); err != nil {
		return Result{}, fmt.Errorf("parse response: %w", err)
	}

	result, err := response.toResult()
	if err != nil {
		return Result{}, err
	}

	e.resetIdleTimer()
	return result, nil
}

// Close shuts down the Python process.
func (e *MediaPipeEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.shutdown()
}

func (e *MediaPipeEngine) ensureStarted() error {
	if e.started {
		return nil
	}

	scriptPath := findServiceScript()
	if scriptPath == "" {
		return fmt.Errorf("mediapipe_service.py not found")
	}

	pythonPath := findVenvPython()
	if pythonPath == "" {
		pythonPath = "python3"
	}

	e.cmd = exec.Command(pythonPath, scriptPath,
		fmt.Sprintf("--max-hands=%d", e.config.MaxHands),
		fmt.Sprintf("--max-bodies=%d", e.config.MaxBodies),
		fmt.Sprintf("--min-confidence=%f", e.config.MinConfidence),
	)

	stdin, err := e.cmd.StdinPipe()
	if err != nil {
		return fmt.Errorf("create stdin pipe: %w", err)
	}
	stdout, err := e.cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("create stdout pipe: %w", err)
	}
	e.cmd.Stderr = os.Stderr

	if err := e.cmd.Start(); err != nil {
		return fmt.Errorf("start mediapipe service: %w", err)
	}

	e.stdin = stdin
	e.stdout = bufio.NewReader(stdout)
	e.started = true
	return nil
}

func (e *MediaPipeEngine) shutdown() error {
	if !e.started {
		return nil
	}

	if e.idleTimer != nil {
		e.idleTimer.Stop()
		e.idleTimer = nil
	}
	if e.stdin != nil {
		e.stdin.Close()
	}

	err := e.cmd.Wait()
	e.started = false
	e.cmd = nil
	e.stdin = nil
	e.stdout = nil
	return err
}

func (e *MediaPipeEngine) resetIdleTimer() {
	if e.idleTimer != nil {
		e.idleTimer.Stop()
	}
	e.idleTimer = time.AfterFunc(30*time.Second, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.shutdown()
	})
}

func findServiceScript() string {
	execPath, err := os.Executable()
	var execDir string
	if err == nil {
		execDir = filepath.Dir(execPath)
	}

	candidates := []string{
		"scripts/mediapipe_service.py",
		"../scripts/mediapipe_service.py",
		filepath.Join(execDir, "scripts/mediapipe_service.py"),
		filepath.Join(os.Getenv("HOME"), ".mudra/scripts/mediapipe_service.py"),
	}
	return firstExisting(candidates)
}

// findVenvPython looks for a Python interpreter in a virtual environment
// near the executable.
func findVenvPython() string {
	execPath, err := os.Executable()
	if err != nil {
		return ""
	}
	execDir := filepath.Dir(execPath)

	candidates := []string{
		"venv/bin/python",
		"../venv/bin/python",
		filepath.Join(execDir, "venv/bin/python"),
		filepath.Join(os.Getenv("HOME"), ".mudra/venv/bin/python"),
	}
	return firstExisting(candidates)
}

func firstExisting(candidates []string) string {
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			if abs, err := filepath.Abs(path); err == nil {
				return abs
			}
			return path
		}
	}
	return ""
}

// Wire types for the JSON line protocol.

type serviceResponse struct {
	TimestampMs int64      `json:"timestamp_ms"`
	Hands       []wireHand `json:"hands"`
	Bodies      []wireBody `json:"bodies"`
	Hits        []wireHit  `json:"hits"`
}

type wirePoint struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Z          float64 `json:"z"`
	Visibility float64 `json:"visibility"`
}

type wireHand struct {
	Points     []wirePoint `json:"points"`
	Handedness string      `json:"handedness"`
	Score      float64     `json:"score"`
}

type wireBody struct {
	Points []wirePoint `json:"points"`
	Score  float64     `json:"score"`
}

type wireHit struct {
	Position [3]float64 `json:"position"`
	Rotation [3]float64 `json:"rotation"`
}

func (r serviceResponse) toResult() (Result, error) {
	result := Result{TimestampMs: r.TimestampMs}

	for i, wh := range r.Hands {
		h, err := landmark.HandFromPoints(toPoints(wh.Points), landmark.Handedness(wh.Handedness))
		if err != nil {
			return Result{}, fmt.Errorf("hand %d: %w", i, err)
		}
		h.Score = wh.Score
		result.Hands = append(result.Hands, h)
	}

	for i, wb := range r.Bodies {
		b, err := landmark.BodyFromPoints(toPoints(wb.Points))
		if err != nil {
			return Result{}, fmt.Errorf("body %d: %w", i, err)
		}
		b.Score = wb.Score
		result.Bodies = append(result.Bodies, b)
	}

	for _, wh := range r.Hits {
		result.Hits = append(result.Hits, anchor.HitResult{Transform: anchor.Transform{
			Position: anchor.Vec3{X: wh.Position[0], Y: wh.Position[1], Z: wh.Position[2]},
			Rotation: anchor.Vec3{X: wh.Rotation[0], Y: wh.Rotation[1], Z: wh.Rotation[2]},
		}})
	}

	return result, nil
}

func toPoints(wire []wirePoint) []landmark.Point {
	points := make([]landmark.Point, len(wire))
	for i, p := range wire {
		points[i] = landmark.Point{X: p.X, Y: p.Y, Z: p.Z, Visibility: p.Visibility}
	}
	return points
}
