package domain

// Surface identifies one of the Google Workspace APIs gwcli talks to.
type Surface string

// Supported API surfaces.
const (
	SurfaceDrive  Surface = "drive"
	SurfaceDocs   Surface = "docs"
	SurfaceSheets Surface = "sheets"
	SurfaceSlides Surface = "slides"
)

// AllSurfaces lists every supported surface.
func AllSurfaces() []Surface {
	return []Surface{SurfaceDrive, SurfaceDocs, SurfaceSheets, SurfaceSlides}
}

// IsValid returns true if the surface is recognised.
func (s Surface) IsValid() bool {
	switch s {
	case SurfaceDrive, SurfaceDocs, SurfaceSheets, SurfaceSlides:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (s Surface) String() string {
	return string(s)
}
