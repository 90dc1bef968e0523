package dataset

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/trknhr/intently/internal/model/entity"
)

// Dataset is a training file with the key order of its JSON objects kept.
//
//	{"intents": {"greet": ["hi", ...]}, "entities": {"timing": ["now", ...]}}
type Dataset struct {
	Examples []entity.TrainingExample
	// Intents lists intent names in file order.
	Intents []string
	Lexicon entity.Lexicon
}

func Load(path string) (*Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	ds, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	return ds, nil
}

func Parse(r io.Reader) (*Dataset, error) {
	iter := jsoniter.Parse(jsoniter.ConfigDefault, r, 4096)
	ds := &Dataset{}

	iter.ReadObjectCB(func(iter *jsoniter.Iterator, field string) bool {
		switch field {
		case "intents":
			readGroups(iter, func(name string, examples []string) {
				ds.Intents = append(ds.Intents, name)
				for _, ex := range examples {
					ds.Examples = append(ds.Examples, entity.TrainingExample{Text: ex, Intent: name})
				}
			})
		case "entities":
			readGroups(iter, func(name string, examples []string) {
				ds.Lexicon = append(ds.Lexicon, entity.EntityExamples{Entity: name, Examples: examples})
			})
		default:
			iter.Skip()
		}
		return iter.Error == nil
	})
	if iter.Error != nil {
		return nil, iter.Error
	}
	if len(ds.Examples) == 0 {
		return nil, fmt.Errorf("%w: dataset has no intent examples", entity.ErrInvalidConfig)
	}
	return ds, nil
}

func readGroups(iter *jsoniter.Iterator, add func(name string, examples []string)) {
	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.Skip()
		return
	}
	iter.ReadObjectCB(func(iter *jsoniter.Iterator, name string) bool {
		var examples []string
		iter.ReadVal(&examples)
		if iter.Error == nil {
			add(name, examples)
		}
		return iter.Error == nil
	})
}
