package detect

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"github.com/smartserve/backend/internal/onnxrt"
)

const foodInputSize = 640

// defaultFoodLabels is used when no labels file sits next to the model.
var defaultFoodLabels = []string{"burger", "fries", "cola", "salad", "soup", "nuggets", "wrap", "dessert"}

// FoodDetector runs a food-domain detection model exported to ONNX
// (YOLO-style head: one output of shape [1, 4+numClasses, numBoxes]).
type FoodDetector struct {
	mu         sync.Mutex
	session    *ort.DynamicAdvancedSession
	labels     []string
	confidence float32
}

func NewFoodDetector(modelPath, labelsPath, ortLibrary string, confidence float64) (*FoodDetector, error) {
	if err := onnxrt.Init(ortLibrary); err != nil {
		return nil, err
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("food model not found: %w", err)
	}

	labels := defaultFoodLabels
	if labelsPath != "" {
		loaded, err := loadLabels(labelsPath)
		if err != nil {
			return nil, err
		}
		labels = loaded
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{"images"}, []string{"output0"}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create food detection session: %w", err)
	}

	return &FoodDetector{
		session:    session,
		labels:     labels,
		confidence: float32(confidence),
	}, nil
}

func loadLabels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("labels file not found: %w", err)
	}
	defer f.Close()

	var labels []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			labels = append(labels, strings.ToLower(line))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(labels) == 0 {
		return nil, fmt.Errorf("labels file %s is empty", path)
	}
	return labels, nil
}

func (d *FoodDetector) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.session != nil {
		err := d.session.Destroy()
		d.session = nil
		return err
	}
	return nil
}

// Detect returns the labels of all boxes above the confidence
// threshold. Any decode or inference problem is an error; the caller
// demotes to the next tier.
func (d *FoodDetector) Detect(ctx context.Context, imagePath string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pixels, err := loadImageCHW(imagePath, foodInputSize, foodInputSize, 0, 1.0/255.0)
	if err != nil {
		return nil, err
	}

	input, err := ort.NewTensor(ort.NewShape(1, 3, foodInputSize, foodInputSize), pixels)
	if err != nil {
		return nil, err
	}
	defer input.Destroy()

	outputs := []ort.Value{nil}
	d.mu.Lock()
	err = d.session.Run([]ort.Value{input}, outputs)
	d.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("food detection inference failed: %w", err)
	}

	out, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}
	defer out.Destroy()

	return d.decode(out.GetData(), out.GetShape())
}

// decode reads a [1, 4+numClasses, numBoxes] prediction tensor and
// keeps the best class per box when it clears the threshold.
func (d *FoodDetector) decode(data []float32, shape ort.Shape) ([]string, error) {
	if len(shape) != 3 {
		return nil, fmt.Errorf("unexpected prediction shape %v", shape)
	}
	rows := int(shape[1])
	boxes := int(shape[2])
	numClasses := rows - 4
	if numClasses <= 0 || len(data) < rows*boxes {
		return nil, fmt.Errorf("malformed prediction tensor %v", shape)
	}

	var labels []string
	for b := 0; b < boxes; b++ {
		best := -1
		var bestScore float32
		for c := 0; c < numClasses; c++ {
			score := data[(4+c)*boxes+b]
			if score > bestScore {
				bestScore = score
				best = c
			}
		}
		if best >= 0 && bestScore >= d.confidence && best < len(d.labels) {
			labels = append(labels, d.labels[best])
		}
	}
	return labels, nil
}
