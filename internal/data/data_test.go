package data

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/born-ml/stepnet/internal/tensor"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	in := "label,a,b\n1,0.5,2\n0, 3 ,-1\n"

	got, err := ReadCSV(strings.NewReader(in), true)
	require.NoError(t, err)

	assert.Equal(t, tensor.Shape{2, 3}, got.Shape())
	assert.Equal(t, []float64{1, 0.5, 2, 0, 3, -1}, got.Data())
}

func TestReadCSV_NoHeader(t *testing.T) {
	got, err := ReadCSV(strings.NewReader("1,2\n3,4\n"), false)
	require.NoError(t, err)

	assert.Equal(t, []float64{1, 2, 3, 4}, got.Data())
}

func TestReadCSV_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		header  bool
		wantErr error
		wantMsg string
	}{
		{name: "empty", in: "", wantErr: ErrEmpty},
		{name: "header only", in: "a,b\n", header: true, wantErr: ErrEmpty},
		{name: "ragged", in: "1,2\n3\n", wantErr: ErrRagged},
		{name: "not a number", in: "1,x\n", wantMsg: "invalid value at line 1, column 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in), tt.header)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestLoadCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "train.csv")
	require.NoError(t, os.WriteFile(path, []byte("y,x\n2,7\n"), 0o600))

	got, err := LoadCSV(path, true)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 7}, got.Data())

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"), true)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCreateBatches(t *testing.T) {
	// Each row is [feature, label, feature] with label = row index.
	rows := make([][]float64, 10)
	for i := range rows {
		rows[i] = []float64{float64(10 * i), float64(i), float64(-i)}
	}
	ds, err := tensor.FromRows(rows)
	require.NoError(t, err)

	batches, err := CreateBatches(ds, 1, 4, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)

	require.Len(t, batches, 3)
	assert.Equal(t, []int{4, 4, 2}, []int{batches[0].Len(), batches[1].Len(), batches[2].Len()})

	var labels []int
	for _, b := range batches {
		assert.Equal(t, 2, b.X.Dim(1))
		assert.Equal(t, 1, b.Y.Dim(1))
		for i := 0; i < b.Len(); i++ {
			label := b.Y.At(i, 0)
			// Features must stay attached to their own label.
			assert.Equal(t, []float64{10 * label, -label}, b.X.Row(i))
			labels = append(labels, int(label))
		}
	}

	slices.Sort(labels)
	if diff := cmp.Diff([]int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, labels); diff != "" {
		t.Errorf("every row must appear exactly once (-want +got):\n%s", diff)
	}
}

func TestCreateBatches_Seeded(t *testing.T) {
	ds := Blobs(BlobsConfig{Samples: 50, Features: 2}, rand.New(rand.NewPCG(5, 6)))

	a, err := CreateBatches(ds, 0, 16, rand.New(rand.NewPCG(7, 8)))
	require.NoError(t, err)
	b, err := CreateBatches(ds, 0, 16, rand.New(rand.NewPCG(7, 8)))
	require.NoError(t, err)

	for i := range a {
		assert.Equal(t, a[i].X.Data(), b[i].X.Data())
	}
}

func TestCreateBatches_Errors(t *testing.T) {
	ds := tensor.Zeros(tensor.Shape{4, 3})

	_, err := CreateBatches(ds, 3, 2, nil)
	assert.ErrorContains(t, err, "label column 3 out of range")

	_, err = CreateBatches(ds, 0, 0, nil)
	assert.ErrorContains(t, err, "batch size must be positive")

	_, err = CreateBatches(tensor.Zeros(tensor.Shape{4}), 0, 2, nil)
	assert.Error(t, err)

	_, err = CreateBatches(tensor.Zeros(tensor.Shape{4, 1}), 0, 2, nil)
	assert.Error(t, err)
}

func TestOneHot(t *testing.T) {
	labels, err := tensor.FromSlice([]float64{2, 0, 5, -1, 1}, tensor.Shape{5, 1})
	require.NoError(t, err)

	got := OneHot(labels, 3)

	want := []float64{
		0, 0, 1,
		1, 0, 0,
		0, 0, 0, // out of range
		0, 0, 0, // negative
		0, 1, 0,
	}
	assert.Equal(t, want, got.Data())
	assert.Panics(t, func() { OneHot(tensor.Zeros(tensor.Shape{2, 2}), 3) })
}

func TestEncode(t *testing.T) {
	x := tensor.Full(tensor.Shape{2, 2}, 255)
	y, err := tensor.FromSlice([]float64{1, 0}, tensor.Shape{2, 1})
	require.NoError(t, err)

	got := Encode([]Batch{{X: x, Y: y}}, 2, 255)

	require.Len(t, got, 1)
	assert.Equal(t, []float64{1, 1, 1, 1}, got[0].X.Data())
	assert.Equal(t, []float64{0, 1, 1, 0}, got[0].Y.Data())
	assert.Equal(t, []float64{255, 255, 255, 255}, x.Data(), "input batch must not change")
}

func TestSplit(t *testing.T) {
	ds, err := tensor.FromRows([][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}})
	require.NoError(t, err)

	head, tail, err := Split(ds, 0.8)
	require.NoError(t, err)
	assert.Equal(t, tensor.Shape{4, 2}, head.Shape())
	assert.Equal(t, []float64{5, 5}, tail.Data())

	head.Set(0, 0, 99)
	assert.Equal(t, 1.0, ds.At(0, 0), "split must copy")

	_, _, err = Split(ds, 1)
	assert.Error(t, err)
	_, _, err = Split(ds, 0.1)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestBlobs(t *testing.T) {
	ds := Blobs(BlobsConfig{Samples: 30, Features: 4, Classes: 3}, rand.New(rand.NewPCG(1, 1)))

	assert.Equal(t, tensor.Shape{30, 5}, ds.Shape())
	for i := 0; i < 30; i++ {
		assert.Equal(t, float64(i%3), ds.At(i, 0))
	}

	again := Blobs(BlobsConfig{Samples: 30, Features: 4, Classes: 3}, rand.New(rand.NewPCG(1, 1)))
	assert.Equal(t, ds.Data(), again.Data())
}
