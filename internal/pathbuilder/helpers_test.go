package pathbuilder

import "github.com/specialistvlad/surveynav/internal/metadata"

func metadataOf(md map[string]any) metadata.Metadata {
	return metadata.New(md)
}
