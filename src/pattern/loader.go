package pattern

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var (
	//ErrInvalidSelection is returned for a non-numeric or out of range preset selection
	ErrInvalidSelection = errors.New("invalid preset selection")
	//ErrNoInput is returned when the input ends before a valid selection is read
	ErrNoInput = errors.New("no input alignment received")

	errNotNumber  = errors.Wrap(ErrInvalidSelection, "not a number")
	errOutOfRange = errors.Wrap(ErrInvalidSelection, "out of range")
)

const separator = "~~~~~~~~~~~~~~~~~~~~~~"

//Prompt asks for the starting preset until a valid one is entered
//malformed input is reported to out and re-prompted, the input end is an error
func Prompt(in io.Reader, out io.Writer, presets []Template) (Template, error) {
	if len(presets) == 0 {
		return Template{}, errors.Wrap(ErrInvalidSelection, "[Prompt] no presets to choose from")
	}
	rd := bufio.NewReader(in)
	for {
		printMenu(out, presets)
		line, err := rd.ReadString('\n')
		if err != nil && err != io.EOF {
			return Template{}, errors.Wrap(err, "[Prompt] failed to read the selection")
		}
		if err == io.EOF && line == "" {
			return Template{}, errors.Wrap(ErrNoInput, "[Prompt] input closed")
		}
		i, perr := parseSelection(line, len(presets))
		switch perr {
		case nil:
			return presets[i], nil
		case errOutOfRange:
			_, _ = fmt.Fprintf(out, "\nInvalid input alignment, please enter a value within range!\n%s\n", separator)
		default:
			_, _ = fmt.Fprintf(out, "\nInvalid input alignment, please enter a valid starting grid!\n%s\n", separator)
		}
	}
}

//Choose resolves value with Select, an empty or invalid value falls back to Prompt
func Choose(value string, in io.Reader, out io.Writer, presets []Template) (Template, error) {
	if strings.TrimSpace(value) != "" {
		t, err := Select(value, presets)
		if err == nil {
			return t, nil
		}
		_, _ = fmt.Fprintf(out, "\n%v\n%s\n", err, separator)
	}
	return Prompt(in, out, presets)
}

//Select resolves the preset by its menu number or its name (case insensitive)
func Select(value string, presets []Template) (Template, error) {
	value = strings.TrimSpace(value)
	if i, err := parseSelection(value, len(presets)); err == nil {
		return presets[i], nil
	} else if err == errOutOfRange {
		return Template{}, errors.Wrapf(err, "[Select] preset number %s", value)
	}
	for _, t := range presets {
		if strings.EqualFold(t.Name, value) {
			return t, nil
		}
	}
	return Template{}, errors.Wrapf(ErrInvalidSelection, "[Select] unknown preset %q", value)
}

//parseSelection parses the 1-based menu number and returns the preset index
//the number is a byte: negative or larger values are not numbers at all
func parseSelection(s string, n int) (int, error) {
	choice, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
	if err != nil {
		return 0, errNotNumber
	}
	if choice < 1 || choice > uint64(n) {
		return 0, errOutOfRange
	}
	return int(choice) - 1, nil
}

func printMenu(out io.Writer, presets []Template) {
	var b strings.Builder
	b.WriteString("\nInput Choices:\n")
	for i, t := range presets {
		fmt.Fprintf(&b, "%d. %s\n", i+1, t.Name)
	}
	b.WriteString("\nPlease enter a valid input alignment:\n")
	_, _ = io.WriteString(out, b.String())
}
