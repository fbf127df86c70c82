// Package training turns the stored passenger snapshot into a fixed train/test
// partition and fits the supported classifiers against it on request.
package training

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"titanic-service/internal/ml"
	"titanic-service/internal/models"
)

// Defaults for Options.
const (
	DefaultTestSize        = 0.1
	DefaultSplitSeed int64 = 42
)

// ErrInvalidModelKind is returned for a model key outside the supported set.
var ErrInvalidModelKind = errors.New("invalid model kind")

// ModelKind identifies a classifier variant by its request key.
type ModelKind string

const (
	LogReg ModelKind = "log_reg"
	SVM    ModelKind = "svm"
	KNN    ModelKind = "knn"
)

// Kinds lists every supported ModelKind in a stable order.
var Kinds = []ModelKind{LogReg, SVM, KNN}

var registry = map[ModelKind]func() ml.Classifier{
	LogReg: func() ml.Classifier { return ml.NewLogisticRegression() },
	SVM:    func() ml.Classifier { return ml.NewSVC() },
	KNN:    func() ml.Classifier { return ml.NewKNN() },
}

// ParseModelKind validates a request key.
func ParseModelKind(key string) (ModelKind, error) {
	kind := ModelKind(key)
	if _, ok := registry[kind]; !ok {
		return "", fmt.Errorf("%w: %q (expected one of %v)", ErrInvalidModelKind, key, Kinds)
	}
	return kind, nil
}

// Options controls how the snapshot is partitioned.
type Options struct {
	TestSize float64
	Seed     int64
}

// DefaultOptions returns a 10% hold-out with seed 42.
func DefaultOptions() Options {
	return Options{TestSize: DefaultTestSize, Seed: DefaultSplitSeed}
}

// Metrics are the support-weighted scores of a fitted model on the test partition.
type Metrics struct {
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
}

// Orchestrator holds an immutable training snapshot and its partition, plus
// one classifier per kind. Train calls for the same kind are serialised on
// that kind's lock; different kinds run in parallel.
type Orchestrator struct {
	split   ml.Split
	dropped int

	locks       map[ModelKind]*sync.Mutex
	classifiers map[ModelKind]ml.Classifier
}

// NewOrchestrator projects records onto the feature set and computes the
// train/test partition once.
func NewOrchestrator(records []models.PassengerRecord, opts Options) (*Orchestrator, error) {
	X, y, dropped := Features(records)
	if dropped > 0 {
		log.Printf("Dropped %d of %d passengers with missing sex or age", dropped, len(records))
	}

	split, err := ml.TrainTestSplit(X, y, opts.TestSize, opts.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to split training data: %w", err)
	}

	locks := make(map[ModelKind]*sync.Mutex, len(Kinds))
	classifiers := make(map[ModelKind]ml.Classifier, len(Kinds))
	for _, kind := range Kinds {
		locks[kind] = &sync.Mutex{}
		classifiers[kind] = registry[kind]()
	}

	log.Printf("Training partition: %d rows, test partition: %d rows", len(split.TrainY), len(split.TestY))
	return &Orchestrator{
		split:       split,
		dropped:     dropped,
		locks:       locks,
		classifiers: classifiers,
	}, nil
}

// Features builds the [sex, age, pclass_id, sibsp, parch] matrix and the
// survived label vector, skipping rows with a missing sex or age.
func Features(records []models.PassengerRecord) ([][]float64, []float64, int) {
	X := make([][]float64, 0, len(records))
	y := make([]float64, 0, len(records))
	dropped := 0
	for _, r := range records {
		if r.Sex == nil || r.Age == nil {
			dropped++
			continue
		}
		X = append(X, []float64{
			float64(*r.Sex),
			*r.Age,
			float64(r.ClassID),
			float64(r.SiblingsSpouses),
			float64(r.ParentsChildren),
		})
		label := 0.0
		if r.Survived {
			label = 1
		}
		y = append(y, label)
	}
	return X, y, dropped
}

// PartitionSizes reports the number of training and test rows.
func (o *Orchestrator) PartitionSizes() (train, test int) {
	return len(o.split.TrainY), len(o.split.TestY)
}

// Dropped reports how many records were excluded for missing features.
func (o *Orchestrator) Dropped() int {
	return o.dropped
}

// Train fits the classifier selected by key on the training partition and
// scores it on the test partition.
func (o *Orchestrator) Train(key string) (Metrics, error) {
	kind, err := ParseModelKind(key)
	if err != nil {
		return Metrics{}, err
	}
	return o.train(kind)
}

func (o *Orchestrator) train(kind ModelKind) (Metrics, error) {
	lock := o.locks[kind]
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()
	clf := o.classifiers[kind]
	if err := clf.Fit(o.split.TrainX, o.split.TrainY); err != nil {
		return Metrics{}, fmt.Errorf("failed to fit %s: %w", kind, err)
	}
	predicted, err := clf.Predict(o.split.TestX)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to predict with %s: %w", kind, err)
	}
	scores, err := ml.WeightedPrecisionRecallF1(o.split.TestY, predicted)
	if err != nil {
		return Metrics{}, fmt.Errorf("failed to score %s: %w", kind, err)
	}

	m := Metrics{Precision: scores.Precision, Recall: scores.Recall, F1: scores.F1}
	log.Printf("Trained %s in %v: precision=%.4f recall=%.4f f1=%.4f",
		kind, time.Since(start).Round(time.Millisecond), m.Precision, m.Recall, m.F1)
	return m, nil
}

// TrainAll trains every kind concurrently. The first failure cancels kinds
// that have not started yet.
func (o *Orchestrator) TrainAll(ctx context.Context) (map[ModelKind]Metrics, error) {
	g, ctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	results := make(map[ModelKind]Metrics, len(Kinds))
	for _, kind := range Kinds {
		kind := kind
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := o.train(kind)
			if err != nil {
				return err
			}
			mu.Lock()
			results[kind] = m
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
