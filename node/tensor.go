package node

import "fmt"

// Tensor is a minimal dense float tensor in channels-last layout, standing
// in for the host's image tensors. Only the layout shuffle the conditioning
// path needs is implemented.
type Tensor struct {
	Shape []int
	Data  []float32
}

// NewTensor allocates a zero tensor with the given shape.
func NewTensor(shape ...int) *Tensor {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return &Tensor{Shape: shape, Data: make([]float32, n)}
}

// ChannelsFirst returns a copy with channels moved before the spatial dims:
// NHWC becomes NCHW. A single HWC image is promoted to a batch of 1 first.
func (t *Tensor) ChannelsFirst() (*Tensor, error) {
	shape := t.Shape
	if len(shape) == 3 {
		shape = []int{1, shape[0], shape[1], shape[2]}
	}
	if len(shape) != 4 {
		return nil, fmt.Errorf("expected HWC or NHWC tensor, got shape %v", t.Shape)
	}

	n, h, w, c := shape[0], shape[1], shape[2], shape[3]
	if n*h*w*c != len(t.Data) {
		return nil, fmt.Errorf("shape %v does not match %d elements", t.Shape, len(t.Data))
	}

	out := &Tensor{Shape: []int{n, c, h, w}, Data: make([]float32, len(t.Data))}
	for ni := 0; ni < n; ni++ {
		for hi := 0; hi < h; hi++ {
			for wi := 0; wi < w; wi++ {
				for ci := 0; ci < c; ci++ {
					src := ((ni*h+hi)*w+wi)*c + ci
					dst := ((ni*c+ci)*h+hi)*w + wi
					out.Data[dst] = t.Data[src]
				}
			}
		}
	}
	return out, nil
}
