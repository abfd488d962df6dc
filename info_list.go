package esx

import (
	"bytes"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/charmap"
)

// CIDInfo is the form type of a LIST chunk holding text tags.
var CIDInfo = [4]byte{'I', 'N', 'F', 'O'}

// See http://bwfmetaedit.sourceforge.net/listinfo.html
var (
	markerIART    = [4]byte{'I', 'A', 'R', 'T'}
	markerISFT    = [4]byte{'I', 'S', 'F', 'T'}
	markerICRD    = [4]byte{'I', 'C', 'R', 'D'}
	markerICOP    = [4]byte{'I', 'C', 'O', 'P'}
	markerINAM    = [4]byte{'I', 'N', 'A', 'M'}
	markerIENG    = [4]byte{'I', 'E', 'N', 'G'}
	markerIGNR    = [4]byte{'I', 'G', 'N', 'R'}
	markerICMT    = [4]byte{'I', 'C', 'M', 'T'}
	markerIKEY    = [4]byte{'I', 'K', 'E', 'Y'}
	markerITRK    = [4]byte{'I', 'T', 'R', 'K'}
	markerITRKBug = [4]byte{'i', 't', 'r', 'k'}
)

// Info holds the text tags of LIST/INFO chunks. Tags without a field here
// are kept in Other under their identifier.
type Info struct {
	Title        string
	Artist       string
	Comments     string
	Copyright    string
	CreationDate string
	Engineer     string
	Genre        string
	Keywords     string
	Software     string
	TrackNbr     string
	Other        map[string]string
}

// Info decodes every LIST/INFO chunk of the document. The chunks stay
// unknown chunks, so reading them never changes what Save writes. Later
// tags win over earlier ones. It returns nil when the document has none.
func (d *Document) Info() (*Info, error) {
	var info *Info

	for _, c := range d.chunks {
		u, ok := c.(*UnknownChunk)
		if !ok || u.raw.ID != CIDList {
			continue
		}

		list, err := ParseContainer(u.raw)
		if err != nil {
			return nil, err
		}

		if list.FormType != CIDInfo {
			continue
		}

		if info == nil {
			info = &Info{}
		}

		for _, tag := range list.Children {
			if err := info.set(tag); err != nil {
				return nil, asParseError(err, tag.Offset, tag.ID)
			}
		}
	}

	return info, nil
}

func (info *Info) set(tag RawChunk) error {
	text, err := charmap.Windows1252.NewDecoder().Bytes(nullTerminated(tag.Data))
	if err != nil {
		return errors.Wrapf(ErrUnsupportedEncoding, "INFO tag %q: %v", tag.ID[:], err)
	}

	s := string(text)

	switch tag.ID {
	case markerINAM:
		info.Title = s
	case markerIART:
		info.Artist = s
	case markerICMT:
		info.Comments = s
	case markerICOP:
		info.Copyright = s
	case markerICRD:
		info.CreationDate = s
	case markerIENG:
		info.Engineer = s
	case markerIGNR:
		info.Genre = s
	case markerIKEY:
		info.Keywords = s
	case markerISFT:
		info.Software = s
	case markerITRK, markerITRKBug:
		info.TrackNbr = s
	default:
		if info.Other == nil {
			info.Other = make(map[string]string)
		}

		info.Other[string(tag.ID[:])] = s
	}

	return nil
}

// nullTerminated cuts b at the first NUL.
func nullTerminated(b []byte) []byte {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return b[:i]
	}

	return b
}
