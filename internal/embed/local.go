package embed

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"

	"github.com/sugarme/tokenizer"
	"github.com/sugarme/tokenizer/pretrained"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/smartserve/backend/internal/onnxrt"
)

const localMaxSeqLen = 128

// LocalEmbedder runs a sentence-embedding transformer exported to ONNX
// entirely in-process. Output vectors are mean-pooled over the token
// axis and L2-normalized.
type LocalEmbedder struct {
	mu      sync.Mutex
	session *ort.DynamicAdvancedSession
	tk      *tokenizer.Tokenizer
}

func NewLocalEmbedder(modelPath, tokenizerPath, ortLibrary string) (*LocalEmbedder, error) {
	if err := onnxrt.Init(ortLibrary); err != nil {
		return nil, err
	}
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("embedding model not found: %w", err)
	}

	tk, err := pretrained.FromFile(tokenizerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load tokenizer: %w", err)
	}

	session, err := ort.NewDynamicAdvancedSession(modelPath,
		[]string{"input_ids", "attention_mask", "token_type_ids"},
		[]string{"last_hidden_state"}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedding session: %w", err)
	}

	return &LocalEmbedder{session: session, tk: tk}, nil
}

func (l *LocalEmbedder) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.session != nil {
		err := l.session.Destroy()
		l.session = nil
		return err
	}
	return nil
}

func (l *LocalEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	enc, err := l.tk.EncodeSingle(text, true)
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize: %w", err)
	}

	ids := enc.Ids
	mask := enc.AttentionMask
	if len(ids) > localMaxSeqLen {
		ids = ids[:localMaxSeqLen]
		mask = mask[:localMaxSeqLen]
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("empty token sequence")
	}

	seq := int64(len(ids))
	inputIDs := make([]int64, seq)
	attnMask := make([]int64, seq)
	typeIDs := make([]int64, seq)
	for i := range ids {
		inputIDs[i] = int64(ids[i])
		attnMask[i] = int64(mask[i])
	}

	shape := ort.NewShape(1, seq)
	idTensor, err := ort.NewTensor(shape, inputIDs)
	if err != nil {
		return nil, err
	}
	defer idTensor.Destroy()
	maskTensor, err := ort.NewTensor(shape, attnMask)
	if err != nil {
		return nil, err
	}
	defer maskTensor.Destroy()
	typeTensor, err := ort.NewTensor(shape, typeIDs)
	if err != nil {
		return nil, err
	}
	defer typeTensor.Destroy()

	outputs := []ort.Value{nil}
	l.mu.Lock()
	err = l.session.Run([]ort.Value{idTensor, maskTensor, typeTensor}, outputs)
	l.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("embedding inference failed: %w", err)
	}

	hidden, ok := outputs[0].(*ort.Tensor[float32])
	if !ok {
		return nil, fmt.Errorf("unexpected output tensor type")
	}
	defer hidden.Destroy()

	outShape := hidden.GetShape()
	if len(outShape) != 3 {
		return nil, fmt.Errorf("unexpected output shape %v", outShape)
	}
	dim := int(outShape[2])
	data := hidden.GetData()

	return meanPool(data, attnMask, dim), nil
}

func (l *LocalEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		vec, err := l.Embed(ctx, t)
		if err != nil {
			return nil, err
		}
		out[i] = vec
	}
	return out, nil
}

// meanPool averages token embeddings weighted by the attention mask
// and L2-normalizes the result.
func meanPool(hidden []float32, mask []int64, dim int) []float32 {
	vec := make([]float32, dim)
	var count float32
	for t := range mask {
		if mask[t] == 0 {
			continue
		}
		count++
		base := t * dim
		for d := 0; d < dim; d++ {
			vec[d] += hidden[base+d]
		}
	}
	if count == 0 {
		return vec
	}
	var norm float64
	for d := range vec {
		vec[d] /= count
		norm += float64(vec[d]) * float64(vec[d])
	}
	if norm > 0 {
		n := float32(math.Sqrt(norm))
		for d := range vec {
			vec[d] /= n
		}
	}
	return vec
}
