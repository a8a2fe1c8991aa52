package accel

import (
	"context"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Device names reported by this package.
const (
	DeviceCPU  = "cpu"
	DeviceCUDA = "cuda"
)

const probeTimeout = 2 * time.Second

// Info hasil deteksi GPU
type Info struct {
	Available   bool
	Device      string
	DeviceName  string
	CUDAVersion string
}

// Status payload untuk endpoint /gpu-status
type Status struct {
	GPUAvailable bool    `json:"gpu_available"`
	UsingDevice  string  `json:"using_device"`
	DeviceName   *string `json:"device_name"`
	CUDAVersion  *string `json:"cuda_version"`
	UseGPUEnv    string  `json:"use_gpu_env"`
}

var cudaVersionRe = regexp.MustCompile(`CUDA Version:\s*([0-9.]+)`)

// runCommand is swapped out in tests.
var runCommand = func(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Detect probes nvidia-smi for an attached GPU. Any probe failure means
// the cpu device; the analyzer itself never needs the GPU, so this is
// observability data only.
func Detect(ctx context.Context) Info {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	out, err := runCommand(ctx, "nvidia-smi", "--query-gpu=name", "--format=csv,noheader")
	if err != nil {
		return Info{Device: DeviceCPU}
	}
	name := firstLine(string(out))
	if name == "" {
		return Info{Device: DeviceCPU}
	}

	info := Info{Available: true, Device: DeviceCUDA, DeviceName: name}
	if banner, err := runCommand(ctx, "nvidia-smi"); err == nil {
		if m := cudaVersionRe.FindStringSubmatch(string(banner)); m != nil {
			info.CUDAVersion = m[1]
		}
	}
	return info
}

var (
	deviceOnce sync.Once
	device     string
)

// Device returns the inference device, decided once per process.
func Device() string {
	deviceOnce.Do(func() { device = pickDevice() })
	return device
}

// pickDevice honors USE_GPU before probing: "false", "0" and "no"
// force the cpu device, anything else defers to detection.
func pickDevice() string {
	switch strings.ToLower(useGPUEnv()) {
	case "false", "0", "no":
		return DeviceCPU
	}
	return Detect(context.Background()).Device
}

func useGPUEnv() string {
	if v, ok := os.LookupEnv("USE_GPU"); ok {
		return v
	}
	return "false"
}

// GetStatus reports availability for health checks and monitoring.
// Availability is probed fresh; the in-use device stays the cached one.
func GetStatus() Status {
	info := Detect(context.Background())
	s := Status{
		GPUAvailable: info.Available,
		UsingDevice:  Device(),
		UseGPUEnv:    useGPUEnv(),
	}
	if info.DeviceName != "" {
		s.DeviceName = &info.DeviceName
	}
	if info.CUDAVersion != "" {
		s.CUDAVersion = &info.CUDAVersion
	}
	return s
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
