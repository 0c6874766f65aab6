package otquery

import (
	"time"

	"github.com/npillmayer/subfont/ot"
)

// HeadTableInfo is a query view over table 'head', including the fields
// package ot does not decode.
type HeadTableInfo struct {
	MajorVersion     uint16
	MinorVersion     uint16
	FontRevision     uint32 // 16.16 fixed
	MagicNumber      uint32
	Flags            uint16
	UnitsPerEm       uint16
	Created          time.Time
	Modified         time.Time
	BBox             BoundingBox
	MacStyle         uint16
	LowestRecPPEM    uint16
	IndexToLocFormat int16
}

const headTableSize = 54

// sfnt timestamps count seconds since 1904-01-01.
var epoch1904 = time.Date(1904, time.January, 1, 0, 0, 0, 0, time.UTC)

// HeadInfo decodes table 'head'.
// Returns (info, true) on success, or (zero, false) if the table is missing
// or too short.
func HeadInfo(otf *ot.Font) (HeadTableInfo, bool) {
	var info HeadTableInfo
	if otf == nil || otf.Head == nil {
		return info, false
	}
	b := otf.Head.Binary()
	if len(b) < headTableSize {
		return info, false
	}
	info.MajorVersion = u16(b[0:])
	info.MinorVersion = u16(b[2:])
	info.FontRevision = u32(b[4:])
	info.MagicNumber = u32(b[12:])
	info.Flags = otf.Head.Flags
	info.UnitsPerEm = otf.Head.UnitsPerEm
	info.Created = longDateTime(b[20:])
	info.Modified = longDateTime(b[28:])
	info.BBox = BoundingBox{
		MinX: sfntUnits(otf.Head.XMin), MinY: sfntUnits(otf.Head.YMin),
		MaxX: sfntUnits(otf.Head.XMax), MaxY: sfntUnits(otf.Head.YMax),
	}
	info.MacStyle = otf.Head.MacStyle
	info.LowestRecPPEM = u16(b[46:])
	info.IndexToLocFormat = int16(otf.Head.IndexToLocFormat)
	return info, true
}

func longDateTime(b []byte) time.Time {
	secs := int64(u32(b))<<32 | int64(u32(b[4:]))
	return time.Unix(epoch1904.Unix()+secs, 0).UTC()
}
