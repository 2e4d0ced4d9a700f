package animation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"gecko-animutils/internal/keyframe"
)

// FormatVersion is the animation file version GeckoLib reads.
const FormatVersion = "1.8.0"

type fileJSON struct {
	FormatVersion string              `json:"format_version"`
	Animations    map[string]clipJSON `json:"animations"`
}

type clipJSON struct {
	Loop   json.RawMessage                                 `json:"loop,omitempty"`
	Length float64                                         `json:"animation_length,omitempty"`
	Bones  map[string]map[keyframe.Channel]json.RawMessage `json:"bones,omitempty"`
}

// Encode writes animations as a GeckoLib animation file.
// Keyframe values are produced by ser, so easing metadata is written only by serializers that carry it.
func Encode(w io.Writer, anims []*Animation, ser keyframe.Serializer) error {
	f := fileJSON{FormatVersion: FormatVersion, Animations: make(map[string]clipJSON, len(anims))}
	for _, a := range anims {
		c := clipJSON{Length: a.Length, Bones: map[string]map[keyframe.Channel]json.RawMessage{}}
		if a.Loop {
			c.Loop = json.RawMessage("true")
		}
		for _, an := range a.Animators() {
			channels := map[keyframe.Channel]json.RawMessage{}
			for _, ch := range keyframe.Channels {
				kfs := an.Channel(ch)
				if len(kfs) == 0 {
					continue
				}
				frames := make(map[string]any, len(kfs))
				for _, k := range kfs {
					frames[Timecode(k.Time)] = ser.Array(k)
				}
				b, err := json.Marshal(frames)
				if err != nil {
					return fmt.Errorf("animation: encode %s %s: %w", a.Name, an.Bone, err)
				}
				channels[ch] = b
			}
			if len(channels) > 0 {
				c.Bones[an.Bone] = channels
			}
		}
		f.Animations[a.Name] = c
	}
	b, err := json.MarshalIndent(f, "", "\t")
	if err != nil {
		return fmt.Errorf("animation: encode: %w", err)
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("animation: write: %w", err)
	}
	return nil
}

// Decode reads a GeckoLib animation file. Keyframes are restored through ser.Extend.
// Animations are returned sorted by name.
func Decode(r io.Reader, ser keyframe.Serializer) ([]*Animation, error) {
	var f fileJSON
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("animation: decode: %w", err)
	}
	names := make([]string, 0, len(f.Animations))
	for name := range f.Animations {
		names = append(names, name)
	}
	slices.Sort(names)

	anims := make([]*Animation, 0, len(names))
	for _, name := range names {
		c := f.Animations[name]
		a := New(name, c.Length, decodeLoop(c.Loop))
		bones := make([]string, 0, len(c.Bones))
		for bone := range c.Bones {
			bones = append(bones, bone)
		}
		slices.Sort(bones)
		for _, bone := range bones {
			an := a.Animator(bone)
			for _, ch := range keyframe.Channels {
				raw, ok := c.Bones[bone][ch]
				if !ok {
					continue
				}
				kfs, err := decodeChannel(ch, raw, ser)
				if err != nil {
					return nil, fmt.Errorf("animation: decode %s %s %s: %w", name, bone, ch, err)
				}
				an.Add(kfs...)
			}
		}
		anims = append(anims, a)
	}
	return anims, nil
}

// decodeChannel accepts either a constant vector or a map of timecode to keyframe value.
func decodeChannel(ch keyframe.Channel, raw json.RawMessage, ser keyframe.Serializer) ([]*keyframe.Keyframe, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '[' {
		u, err := decodeValue(raw)
		if err != nil {
			return nil, err
		}
		k := &keyframe.Keyframe{}
		u.Channel = ch
		ser.Extend(k, u)
		return []*keyframe.Keyframe{k}, nil
	}
	var frames map[string]json.RawMessage
	if err := json.Unmarshal(raw, &frames); err != nil {
		return nil, err
	}
	kfs := make([]*keyframe.Keyframe, 0, len(frames))
	for code, v := range frames {
		t, err := strconv.ParseFloat(code, 64)
		if err != nil {
			return nil, fmt.Errorf("timecode %q: %w", code, err)
		}
		u, err := decodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("at %s: %w", code, err)
		}
		u.Channel = ch
		u.Time = &t
		k := &keyframe.Keyframe{}
		ser.Extend(k, u)
		kfs = append(kfs, k)
	}
	slices.SortFunc(kfs, func(a, b *keyframe.Keyframe) int {
		switch {
		case a.Time < b.Time:
			return -1
		case a.Time > b.Time:
			return 1
		}
		return 0
	})
	return kfs, nil
}

func decodeValue(raw json.RawMessage) (keyframe.Update, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var obj struct {
			Vector     json.RawMessage `json:"vector"`
			Easing     string          `json:"easing"`
			EasingArgs []float64       `json:"easingArgs"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return keyframe.Update{}, err
		}
		vec, err := decodeVector(obj.Vector)
		if err != nil {
			return keyframe.Update{}, err
		}
		a := &keyframe.Array{Easing: obj.Easing, EasingArgs: obj.EasingArgs}
		copy(a.Vector[:], vec)
		return keyframe.Update{Values: a}, nil
	}
	vec, err := decodeVector(raw)
	if err != nil {
		return keyframe.Update{}, err
	}
	return keyframe.Update{Vector: vec}, nil
}

// decodeVector reads a 3-vector whose components are numbers or numeric strings.
func decodeVector(raw json.RawMessage) ([]float64, error) {
	var parts []any
	if err := json.Unmarshal(raw, &parts); err != nil {
		return nil, err
	}
	if len(parts) != 3 {
		return nil, fmt.Errorf("vector of %d components", len(parts))
	}
	vec := make([]float64, 3)
	for i, p := range parts {
		switch v := p.(type) {
		case float64:
			vec[i] = v
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return nil, fmt.Errorf("unsupported expression %q", v)
			}
			vec[i] = f
		default:
			return nil, fmt.Errorf("component %d: unexpected %T", i, p)
		}
	}
	return vec, nil
}

// decodeLoop accepts a boolean or the "hold_on_last_frame" mode, which does not loop.
func decodeLoop(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	return false
}

// Timecode formats seconds as an animation file key: shortest form with at least one decimal.
func Timecode(t float64) string {
	s := strconv.FormatFloat(t, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
