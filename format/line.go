package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/fxmlkit/fxc/introspect"
)

// LineEncoder writes one registered class as tab-separated lines, one line
// per member. Meant for grepping through large metadata tables.
type LineEncoder struct {
	w     io.Writer
	class *introspect.Class
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(class *introspect.Class) error {
	e.class = class
	text, err := e.MarshalText()
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText() ([]byte, error) {
	var sb strings.Builder
	c := e.class

	fmt.Fprintf(&sb, "%s\t%s\t%s\n", c.Kind, c.Name, e.classModifiersStr())

	for _, ctor := range c.Constructors {
		fmt.Fprintf(&sb, "constructor\t%s\t%s\n",
			parametersStr(ctor.Parameters),
			ctor.Visibility,
		)
	}

	for _, f := range c.Fields {
		fmt.Fprintf(&sb, "field\t%s\t%s\t%s\t%s\n",
			f.Name,
			f.Type.String(),
			f.Visibility,
			fieldModifiersStr(f),
		)
	}

	for _, m := range c.Methods {
		fmt.Fprintf(&sb, "method\t%s\t%s\t%s\t%s\t%s\n",
			m.Name,
			m.ReturnType.String(),
			parametersStr(m.Parameters),
			m.Visibility,
			methodModifiersStr(m),
		)
	}

	return []byte(sb.String()), nil
}

func (e *LineEncoder) classModifiersStr() string {
	c := e.class
	mods := []string{string(c.Visibility)}
	if c.IsAbstract {
		mods = append(mods, "abstract")
	}
	return strings.Join(mods, ",")
}

func fieldModifiersStr(f introspect.Field) string {
	var mods []string
	if f.IsStatic {
		mods = append(mods, "static")
	}
	if f.IsFinal {
		mods = append(mods, "final")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func methodModifiersStr(m introspect.Method) string {
	var mods []string
	if m.IsStatic {
		mods = append(mods, "static")
	}
	if m.IsAbstract {
		mods = append(mods, "abstract")
	}
	if len(mods) == 0 {
		return "-"
	}
	return strings.Join(mods, ",")
}

func parametersStr(params []introspect.Parameter) string {
	if len(params) == 0 {
		return "-"
	}
	var parts []string
	for _, p := range params {
		if p.Named {
			parts = append(parts, p.Name+":"+p.Type.String())
		} else {
			parts = append(parts, p.Type.String())
		}
	}
	return strings.Join(parts, ",")
}
