package ctdf

import (
	"strconv"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type Catalog struct {
	GeneratedAt time.Time `json:"generated_at"`
	SourceURL   string    `json:"source_url"`

	Stops []Stop `json:"stops"`
	Lines []Line `json:"lines"`
}

func (c *Catalog) GetStop(id int) (*Stop, bool) {
	if c == nil {
		return nil, false
	}

	for i := range c.Stops {
		if c.Stops[i].ID == id {
			return &c.Stops[i], true
		}
	}

	return nil, false
}

func (c *Catalog) GetLine(id int) (*Line, bool) {
	if c == nil {
		return nil, false
	}

	for i := range c.Lines {
		if c.Lines[i].ID == id {
			return &c.Lines[i], true
		}
	}

	return nil, false
}

// LineMetadata indexes the display metadata of every line by ID. A nil catalog gives an empty map.
func (c *Catalog) LineMetadata() map[int]LineMetadata {
	mapping := map[int]LineMetadata{}
	if c == nil {
		return mapping
	}

	for _, line := range c.Lines {
		var metadata LineMetadata
		if err := copier.Copy(&metadata, &line); err != nil {
			log.Error().Err(err).Int("line", line.ID).Msg("Failed to copy line metadata")
			continue
		}

		if metadata.CommercialName == "" {
			metadata.CommercialName = line.Name
		}
		if metadata.CommercialName == "" {
			metadata.CommercialName = strconv.Itoa(line.ID)
		}
		metadata.Name = metadata.CommercialName
		metadata.HasIda = &line.HasIda
		metadata.HasVuelta = &line.HasVuelta

		mapping[line.ID] = metadata
	}

	return mapping
}
