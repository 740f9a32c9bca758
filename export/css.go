package export

import (
	"bytes"
	"path"
	"strconv"
	"strings"
	"text/template"

	"atlaspack/atlas"
)

var cssTemplate = template.Must(template.New("css").Funcs(template.FuncMap{
	"offset": cssOffset,
}).Parse(`/* {{.App}} {{.Version}}: {{.Image}} {{.Width}}x{{.Height}} */
{{range .Rules}}
.{{.Class}} {
	background: url('{{$.Image}}') no-repeat;
	background-position: {{offset .X}} {{offset .Y}};
	width: {{.Width}}px;
	height: {{.Height}}px;
}
{{end}}`))

type cssRule struct {
	Class         string
	X, Y          int
	Width, Height int
}

// ExportCSS writes one class per sprite, named "<atlas>-<sprite>" with the sprite's extension
// dropped and every character outside [A-Za-z0-9_-] replaced by '-'. Names that would start
// with a digit get a leading '_'. When two sprites map to the same name, the later one gets a
// "-2", "-3", ... suffix, so every sprite keeps its own class.
func ExportCSS(a *atlas.PackedAtlas, name string) ([]byte, error) {
	if a == nil {
		return nil, ErrNilAtlas
	}
	classes := cssClasses(name, a.Frames)
	rules := make([]cssRule, len(a.Frames))
	for i := range a.Frames {
		f := &a.Frames[i]
		rules[i] = cssRule{Class: classes[i], X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
	}
	var buffer bytes.Buffer
	err := cssTemplate.Execute(&buffer, map[string]any{
		"App":     App,
		"Version": Version,
		"Image":   ImageName(name),
		"Width":   a.Width,
		"Height":  a.Height,
		"Rules":   rules,
	})
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// cssClasses returns one distinct class name per frame, in frame order.
func cssClasses(atlasName string, frames []atlas.Frame) []string {
	classes := make([]string, len(frames))
	used := make(map[string]bool, len(frames))
	for i := range frames {
		base := cssClass(atlasName, frames[i].Name)
		class := base
		for n := 2; used[class]; n++ {
			class = base + "-" + strconv.Itoa(n)
		}
		used[class] = true
		classes[i] = class
	}
	return classes
}

func cssClass(atlasName, spriteName string) string {
	spriteName = strings.TrimSuffix(spriteName, path.Ext(spriteName))
	class := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		}
		return '-'
	}, atlasName+"-"+spriteName)
	// an identifier must not start with a digit, nor with '-' followed by a digit
	rest := strings.TrimPrefix(class, "-")
	if rest != "" && rest[0] >= '0' && rest[0] <= '9' {
		class = "_" + class
	}
	return class
}

func cssOffset(v int) string {
	if v == 0 {
		return "0"
	}
	return "-" + strconv.Itoa(v) + "px"
}
