package detect

import (
	"context"
	"fmt"
	"os"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/smartserve/backend/internal/onnxrt"
)

const genericInputSize = 300

// genericClasses is the fixed 21-class vocabulary of the generic
// detector. It knows nothing about food.
var genericClasses = []string{
	"background", "aeroplane", "bicycle", "bird", "boat", "bottle",
	"bus", "car", "cat", "chair", "cow", "diningtable", "dog", "horse",
	"motorbike", "person", "pottedplant", "sheep", "sofa", "train",
	"tvmonitor",
}

// genericRemap translates generic classes into menu-domain labels.
// Classes missing from the table are dropped.
var genericRemap = map[string]string{
	"bottle": "cola",
	"cup":    "cola",
}

// GenericDetector runs a general-purpose SSD model and remaps its
// fixed vocabulary onto menu labels.
type GenericDetector struct {
	mu         sync.Mutex
	session    *ort.DynamicAdvancedSession
	confidence float32
}

func NewGenericDetector(modelPath, ortLibrary string, confidence float64) (*GenericDetector, error) {
	if err := onnxrt.Init(ortLibrary); err != nil {
		return nil, err
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("generic model not found: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{"data"}, []string{"detection_out"}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create generic detection session: %w", err)
	}

	return &GenericDetector{session: session, confidence: float32(confidence)}, nil
}

func (d *GenericDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session != nil {
		err := d.session.Destroy()
		d.session = nil
		return err
	}
	return nil
}

// Detect runs the SSD model and returns remapped menu labels for
// detections above the confidence threshold.
func (d *GenericDetector) Detect(ctx context.Context, imagePath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// SSD preprocessing: (x - 127.5) * 0.007843
	pixels, err := loadImageCHW(imagePath, genericInputSize, genericInputSize, 127.5, 0.007843)
	if err != nil {
		return nil, err
	}

	input, err := ort.NewTensor(ort.NewShape(1, 3, genericInputSize, genericInputSize), pixels)
	if err != nil {
		return nil, err
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	d.mu.Lock()
	err = d.session.Run([]ort.Value{input}, outputs)
	d.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("generic detection inference failed: %w", err)
	}

	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}
	defer out.Destroy()

	return d.remap(out.GetData())
}

// remap reads SSD detection rows [imageID, classID, confidence, box...]
// (7 floats per detection) and translates kept classes to menu labels.
func (d *GenericDetector) remap(data []float32) ([]string, error) {
	if len(data)%7 != 0 {
		return nil, fmt.Errorf("malformed detection output of length %d", len(data))
	}

	var labels []string
	for i := 0; i+7 <= len(data); i += 7 {
		confidence := data[i+2]
		if confidence <= d.confidence {
			continue
		}
		classID := int(data[i+1])
		if classID < 0 || classID >= len(genericClasses) {
			continue
		}
		if mapped, ok := genericRemap[genericClasses[classID]]; ok {
			labels = append(labels, mapped)
		}
	}
	return labels, nil
}
