package config

import (
	"errors"
	"fmt"
	"image/color"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// ShapeTemplatesDir 内置关卡模板目录
const ShapeTemplatesDir = "data/templates"

var (
	// ErrEmptyTemplate 模板中没有任何非空格子
	ErrEmptyTemplate = errors.New("shape template has no bricks")
	// ErrEmptyLibrary 模板库为空
	ErrEmptyLibrary = errors.New("shape template library is empty")
)

// ShapeTemplate 关卡形状模板
//
// 模板文件示例（data/templates/heart.yaml）:
//
//	id: heart
//	palette:
//	  R: "#ef4444"
//	rows:
//	  - ".RR...RR."
//	  - "RRRR.RRRR"
//
// rows 中每个字符是一个格子，"." 表示空格，其余字符在 palette 中查颜色。
type ShapeTemplate struct {
	ID string `yaml:"id"`
	// Classic 经典模板使用对角线取模规则分配加固砖块
	Classic bool              `yaml:"classic"`
	Palette map[string]string `yaml:"palette"`
	Rows    []string          `yaml:"rows"`

	// cells 解析后的格子，nil 表示空格
	cells [][]*color.RGBA
	cols  int
}

// RowCount 模板行数
func (t *ShapeTemplate) RowCount() int {
	return len(t.cells)
}

// ColCount 模板列数（取最宽的一行）
func (t *ShapeTemplate) ColCount() int {
	return t.cols
}

// Cell 返回格子颜色，空格返回 false
func (t *ShapeTemplate) Cell(row, col int) (color.RGBA, bool) {
	if row < 0 || row >= len(t.cells) || col < 0 || col >= len(t.cells[row]) {
		return color.RGBA{}, false
	}
	c := t.cells[row][col]
	if c == nil {
		return color.RGBA{}, false
	}
	return *c, true
}

// BrickCount 非空格子数量
func (t *ShapeTemplate) BrickCount() int {
	n := 0
	for _, row := range t.cells {
		for _, c := range row {
			if c != nil {
				n++
			}
		}
	}
	return n
}

// compile 解析 rows 和 palette
func (t *ShapeTemplate) compile() error {
	if t.ID == "" {
		return fmt.Errorf("shape template missing id")
	}

	palette := make(map[rune]color.RGBA, len(t.Palette))
	for key, hex := range t.Palette {
		runes := []rune(key)
		if len(runes) != 1 {
			return fmt.Errorf("template %s: palette key %q must be a single character", t.ID, key)
		}
		if runes[0] == '.' {
			return fmt.Errorf("template %s: '.' is reserved for empty cells", t.ID)
		}
		c, err := ParseHexColor(hex)
		if err != nil {
			return fmt.Errorf("template %s: palette %q: %w", t.ID, key, err)
		}
		palette[runes[0]] = c
	}

	t.cells = make([][]*color.RGBA, len(t.Rows))
	t.cols = 0
	for r, line := range t.Rows {
		runes := []rune(line)
		row := make([]*color.RGBA, len(runes))
		for c, ch := range runes {
			if ch == '.' || ch == ' ' {
				continue
			}
			clr, ok := palette[ch]
			if !ok {
				return fmt.Errorf("template %s: row %d col %d: unknown palette key %q", t.ID, r, c, ch)
			}
			cell := clr
			row[c] = &cell
		}
		t.cells[r] = row
		if len(runes) > t.cols {
			t.cols = len(runes)
		}
	}

	if t.BrickCount() == 0 {
		return fmt.Errorf("template %s: %w", t.ID, ErrEmptyTemplate)
	}
	return nil
}

// ParseShapeTemplate 解析单个 YAML 模板
func ParseShapeTemplate(data []byte) (*ShapeTemplate, error) {
	var tpl ShapeTemplate
	if err := yaml.Unmarshal(data, &tpl); err != nil {
		return nil, fmt.Errorf("failed to parse shape template: %w", err)
	}
	if err := tpl.compile(); err != nil {
		return nil, err
	}
	return &tpl, nil
}

// TemplateLibrary 关卡模板库，按 ID 排序以保证随机选择可复现
type TemplateLibrary struct {
	templates []*ShapeTemplate
}

// NewTemplateLibrary 由已解析的模板构建模板库
// 空模板库或重复 ID 都视为构建错误
func NewTemplateLibrary(templates ...*ShapeTemplate) (*TemplateLibrary, error) {
	if len(templates) == 0 {
		return nil, ErrEmptyLibrary
	}

	seen := make(map[string]bool, len(templates))
	sorted := make([]*ShapeTemplate, 0, len(templates))
	for _, tpl := range templates {
		if tpl == nil {
			return nil, fmt.Errorf("nil shape template")
		}
		if tpl.cells == nil {
			if err := tpl.compile(); err != nil {
				return nil, err
			}
		}
		if seen[tpl.ID] {
			return nil, fmt.Errorf("duplicate shape template id %q", tpl.ID)
		}
		seen[tpl.ID] = true
		sorted = append(sorted, tpl)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	return &TemplateLibrary{templates: sorted}, nil
}

// LoadTemplateLibrary 从文件系统目录加载所有 *.yaml 模板
//
// 参数:
//   - fsys: 文件系统（embed.FS 或 os.DirFS）
//   - dir: 模板目录（如 "data/templates"）
func LoadTemplateLibrary(fsys fs.FS, dir string) (*TemplateLibrary, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read template dir %s: %w", dir, err)
	}

	templates := make([]*ShapeTemplate, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read template %s: %w", entry.Name(), err)
		}
		tpl, err := ParseShapeTemplate(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
		templates = append(templates, tpl)
	}

	return NewTemplateLibrary(templates...)
}

// Len 模板数量
func (l *TemplateLibrary) Len() int {
	return len(l.templates)
}

// At 按索引取模板
func (l *TemplateLibrary) At(i int) *ShapeTemplate {
	return l.templates[i]
}

// Get 按 ID 取模板
func (l *TemplateLibrary) Get(id string) (*ShapeTemplate, bool) {
	for _, tpl := range l.templates {
		if tpl.ID == id {
			return tpl, true
		}
	}
	return nil, false
}

// IDs 所有模板 ID（已排序）
func (l *TemplateLibrary) IDs() []string {
	ids := make([]string, len(l.templates))
	for i, tpl := range l.templates {
		ids[i] = tpl.ID
	}
	return ids
}

// ParseHexColor 解析 "#rrggbb" 或 "#rrggbbaa" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	if len(hex) == 6 {
		return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
