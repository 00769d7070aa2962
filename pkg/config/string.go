package config

import (
	"encoding/json"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// StringSlice accepts either a single string or a list, e.g. "indicators: sma20" or "indicators: [sma20, rsi14]"
type StringSlice []string

func (s *StringSlice) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var str string
		if err := value.Decode(&str); err != nil {
			return err
		}
		*s = StringSlice{str}
		return nil

	case yaml.SequenceNode:
		var list []string
		if err := value.Decode(&list); err != nil {
			return err
		}
		*s = list
		return nil
	}

	return errors.Errorf("line %d: expect a string or a list of strings", value.Line)
}

func (s *StringSlice) UnmarshalJSON(b []byte) error {
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = StringSlice{str}
		return nil
	}

	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return errors.Wrap(err, "expect a string or a list of strings")
	}

	*s = list
	return nil
}
