package main

import (
	"strings"

	"go.eggybyte.com/genex/core/errors"
)

// parseBoolToken accepts true, t, false and f in any case.
func parseBoolToken(flag, value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "t":
		return true, nil
	case "false", "f":
		return false, nil
	default:
		return false, errors.Build(errors.CodeInvalidArgument).
			WithOp("flags").
			WithMsgf("%s: %q is not a boolean (use true, t, false or f)", flag, value).
			Err()
	}
}

// boolFlag returns the parsed token, or fallback when value is empty.
func boolFlag(flag, value string, fallback bool) (bool, error) {
	if value == "" {
		return fallback, nil
	}
	return parseBoolToken(flag, value)
}

// lombokMode is auto or an explicit choice.
type lombokMode struct {
	auto    bool
	enabled bool
}

func parseLombokMode(flag, value string) (lombokMode, error) {
	if strings.EqualFold(strings.TrimSpace(value), "auto") {
		return lombokMode{auto: true}, nil
	}
	enabled, err := parseBoolToken(flag, value)
	if err != nil {
		return lombokMode{}, errors.Build(errors.CodeInvalidArgument).
			WithOp("flags").
			WithMsgf("%s: %q is not auto, true or false", flag, value).
			Err()
	}
	return lombokMode{enabled: enabled}, nil
}

func invalidArgument(flag string, err error) error {
	return errors.Wrapf(errors.CodeInvalidArgument, "flags", err, "%s", flag)
}
