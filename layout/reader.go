package layout

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

type decoder struct {
	config   Config
	section  string
	legacy   []Animation
	detailed []Animation

	// open [animation_data] block
	current  *Animation
	countSet bool
	endFrame int

	warnings []string
}

// Decode reads a sidecar from r. Decoding is permissive: malformed
// lines are skipped and unparsable grid dimensions fall back to 4, with
// every fallback recorded in the returned Config's Warnings. The only
// error returned is a read failure.
func Decode(r io.Reader) (*Config, error) {
	d := decoder{}
	s := bufio.NewScanner(r)
	for s.Scan() {
		d.line(s.Text())
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	return d.finish(), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Config) UnmarshalText(text []byte) error {
	cfg, err := Decode(bytes.NewReader(text))
	if err != nil {
		return err
	}
	*c = *cfg
	return nil
}

func (d *decoder) line(raw string) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return
	}

	if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
		d.flush()
		d.section = trimmed[1 : len(trimmed)-1]
		return
	}

	switch d.section {
	case "layout":
		d.layoutLine(trimmed)
	case "animations":
		d.animationsLine(trimmed)
	case "animation_data":
		d.dataLine(raw, trimmed)
	}
}

func (d *decoder) layoutLine(line string) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		d.warnf("[layout]: skipping malformed line %q", line)
		return
	}
	key, value = strings.TrimSpace(key), strings.TrimSpace(value)

	switch key {
	case "mode":
		m := Mode(value)
		if !m.Valid() {
			d.warnf("[layout]: unknown mode %q, assuming %s", value, Horizontal)
			m = Horizontal
		}
		d.config.Mode = m
	case "target_size":
		n, err := strconv.Atoi(value)
		if err != nil {
			d.warnf("[layout]: skipping invalid target_size %q", value)
			return
		}
		d.config.TargetSize = n
	case "grid_cols":
		d.config.GridCols = d.gridValue(key, value)
	case "grid_rows":
		d.config.GridRows = d.gridValue(key, value)
	}
}

func (d *decoder) gridValue(key, value string) int {
	n, err := strconv.Atoi(value)
	if err != nil || n < 1 {
		d.warnf("[layout]: invalid %s %q, using default %d", key, value, defaultGrid)
		return defaultGrid
	}
	return n
}

func (d *decoder) animationsLine(line string) {
	name, value, ok := strings.Cut(line, "=")
	if !ok {
		d.warnf("[animations]: skipping malformed line %q", line)
		return
	}
	name, value = strings.TrimSpace(name), strings.TrimSpace(value)
	count, err := strconv.Atoi(value)
	if err != nil {
		d.warnf("[animations]: skipping %q, invalid frame count %q", name, value)
		return
	}
	d.legacy = append(d.legacy, Animation{Name: name, FrameCount: count})
}

func (d *decoder) dataLine(raw, trimmed string) {
	indented := strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t")

	if !indented && strings.HasSuffix(trimmed, ":") {
		d.flush()
		d.current = &Animation{Name: strings.TrimSuffix(trimmed, ":")}
		return
	}

	if indented && d.current != nil {
		key, value, ok := strings.Cut(trimmed, ":")
		if !ok {
			d.warnf("[animation_data] %s: skipping malformed line %q", d.current.Name, trimmed)
			return
		}
		key, value = strings.TrimSpace(key), strings.TrimSpace(value)
		n, err := strconv.Atoi(value)
		if err != nil {
			d.warnf("[animation_data] %s: skipping invalid %s %q", d.current.Name, key, value)
			return
		}
		switch key {
		case "start_frame":
			d.current.StartFrame = n
		case "frame_count":
			d.current.FrameCount = n
			d.countSet = true
		case "end_frame":
			d.endFrame = n
		}
		return
	}

	d.warnf("[animation_data]: skipping stray line %q", trimmed)
}

// flush closes the open [animation_data] block, if any. A block that
// names only start and end frames has its count derived from them.
func (d *decoder) flush() {
	if d.current == nil {
		return
	}
	a := *d.current
	if !d.countSet && d.endFrame >= a.StartFrame {
		a.FrameCount = d.endFrame - a.StartFrame + 1
	}
	d.detailed = append(d.detailed, a)
	d.current = nil
	d.countSet = false
	d.endFrame = 0
}

func (d *decoder) finish() *Config {
	d.flush()

	c := d.config
	if c.Mode == "" {
		c.Mode = Horizontal
	}
	if c.GridCols == 0 {
		c.GridCols = defaultGrid
	}
	if c.GridRows == 0 {
		c.GridRows = defaultGrid
	}

	// [animation_data] is authoritative when both forms are present. The
	// legacy [animations] form carries only counts, so start offsets are
	// the cumulative sum in declaration order.
	switch {
	case len(d.detailed) > 0:
		c.Animations = d.detailed
	case len(d.legacy) > 0:
		start := 0
		for i := range d.legacy {
			d.legacy[i].StartFrame = start
			start += d.legacy[i].FrameCount
		}
		c.Animations = d.legacy
	}

	c.Warnings = d.warnings
	return &c
}

func (d *decoder) warnf(format string, args ...interface{}) {
	d.warnings = append(d.warnings, fmt.Sprintf(format, args...))
}
