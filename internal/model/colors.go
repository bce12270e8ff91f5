package model

// NoteColors is the background palette offered by the color picker.
// The first entry is the default for new records.
var NoteColors = []string{
	"#FFFFFF",
	"#FFF9C4",
	"#FFCDD2",
	"#C8E6C9",
	"#BBDEFB",
	"#E1BEE7",
	"#FFE0B2",
	"#F5F5F5",
}

var darkColorMap = map[string]string{
	"#FFFFFF": "#1e293b",
	"#FFF9C4": "#3d3815",
	"#FFCDD2": "#3d1a1e",
	"#C8E6C9": "#1a3d1c",
	"#BBDEFB": "#1a2d3d",
	"#E1BEE7": "#2d1a3d",
	"#FFE0B2": "#3d2a15",
	"#F5F5F5": "#2d3748",
}

// DarkBackgroundColor maps a palette color to its dark-theme counterpart.
// Unknown colors fall back to the default dark surface.
func DarkBackgroundColor(color string) string {
	if c, ok := darkColorMap[color]; ok {
		return c
	}
	return "#1e293b"
}
