package seed

import (
	"fmt"
	"os"

	"happyhour/internal/models"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReferenceData describes the curated categories, locations and spaces the
// directory ships with. It can be overridden with a YAML fixture file.
type ReferenceData struct {
	Categories []string        `yaml:"categories"`
	Locations  []LocationEntry `yaml:"locations"`
	Spaces     []SpaceEntry    `yaml:"spaces"`
}

type LocationEntry struct {
	City         string `yaml:"city"`
	Neighborhood string `yaml:"neighborhood"`
}

type SpaceEntry struct {
	Title        string `yaml:"title"`
	Description  string `yaml:"description"`
	Address      string `yaml:"address"`
	EstYear      int    `yaml:"est_year"`
	Category     string `yaml:"category"`
	City         string `yaml:"city"`
	Neighborhood string `yaml:"neighborhood"`
}

// DefaultReference is the built-in reference set used when no fixture file is
// supplied.
func DefaultReference() ReferenceData {
	return ReferenceData{
		Categories: []string{
			"Fine Dining", "Wine Bar", "Cocktail Lounge", "Rooftop Bar",
			"Coffee House", "Gastropub", "Speakeasy", "Beer Garden",
		},
		Locations: []LocationEntry{
			{City: "Portland", Neighborhood: "Pearl District"},
			{City: "Portland", Neighborhood: "Alberta Arts"},
			{City: "Seattle", Neighborhood: "Capitol Hill"},
			{City: "Seattle", Neighborhood: "Ballard"},
			{City: "Denver", Neighborhood: "RiNo"},
			{City: "Austin", Neighborhood: "East Side"},
		},
		Spaces: []SpaceEntry{
			{
				Title:        "Loft Nine",
				Description:  "Converted warehouse loft with exposed brick and iron beams.",
				Address:      "900 NW Lovejoy St",
				EstYear:      2014,
				Category:     "Fine Dining",
				City:         "Portland",
				Neighborhood: "Pearl District",
			},
			{
				Title:        "Velvet Room",
				Description:  "Low-lit lounge wrapped in deep red velvet and brass.",
				Address:      "1213 E Pine St",
				EstYear:      2018,
				Category:     "Cocktail Lounge",
				City:         "Seattle",
				Neighborhood: "Capitol Hill",
			},
			{
				Title:        "The Greenhouse",
				Description:  "Glass-roofed garden bar full of hanging plants.",
				Address:      "2901 Larimer St",
				EstYear:      2019,
				Category:     "Beer Garden",
				City:         "Denver",
				Neighborhood: "RiNo",
			},
			{
				Title:        "Cedar And Smoke",
				Description:  "Timber-panelled gastropub with an open hearth.",
				Address:      "5339 Ballard Ave NW",
				EstYear:      2016,
				Category:     "Gastropub",
				City:         "Seattle",
				Neighborhood: "Ballard",
			},
			{
				Title:        "Paper Crane",
				Description:  "Minimalist coffee house with origami-inspired joinery.",
				Address:      "1804 E 12th St",
				EstYear:      2021,
				Category:     "Coffee House",
				City:         "Austin",
				Neighborhood: "East Side",
			},
		},
	}
}

// LoadReferenceFile parses a YAML fixture file into ReferenceData.
func LoadReferenceFile(path string) (ReferenceData, error) {
	var data ReferenceData

	raw, err := os.ReadFile(path)
	if err != nil {
		return data, fmt.Errorf("read fixture file: %w", err)
	}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return data, fmt.Errorf("parse fixture file: %w", err)
	}
	return data, nil
}

// Reference upserts the reference data. Safe to run repeatedly: existing rows
// are matched on their natural keys and updated in place.
func Reference(db *gorm.DB, data ReferenceData) error {
	categories := make(map[string]models.Category, len(data.Categories))
	for _, catType := range data.Categories {
		category := models.Category{CatType: catType}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cat_type"}},
			DoNothing: true,
		}).Create(&category).Error; err != nil {
			return fmt.Errorf("seed category %q: %w", catType, err)
		}
		if category.ID == 0 {
			if err := db.Where("cat_type = ?", catType).First(&category).Error; err != nil {
				return err
			}
		}
		categories[catType] = category
	}

	locations := make(map[string]models.Location, len(data.Locations))
	for _, entry := range data.Locations {
		location := models.Location{City: entry.City, Neighborhood: entry.Neighborhood}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "city"}, {Name: "neighborhood"}},
			DoNothing: true,
		}).Create(&location).Error; err != nil {
			return fmt.Errorf("seed location %s/%s: %w", entry.City, entry.Neighborhood, err)
		}
		if location.ID == 0 {
			if err := db.Where("city = ? AND neighborhood = ?", entry.City, entry.Neighborhood).First(&location).Error; err != nil {
				return err
			}
		}
		locations[entry.City+"/"+entry.Neighborhood] = location
	}

	for _, entry := range data.Spaces {
		category, ok := categories[entry.Category]
		if !ok {
			return fmt.Errorf("space %q references unknown category %q", entry.Title, entry.Category)
		}
		location, ok := locations[entry.City+"/"+entry.Neighborhood]
		if !ok {
			return fmt.Errorf("space %q references unknown location %s/%s", entry.Title, entry.City, entry.Neighborhood)
		}

		space := models.Space{
			Title:       entry.Title,
			Description: entry.Description,
			Address:     entry.Address,
			EstYear:     entry.EstYear,
			CategoryID:  category.ID,
			LocationID:  location.ID,
		}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "title"}},
			DoUpdates: clause.AssignmentColumns([]string{"description", "address", "est_year", "category_id", "location_id", "updated_at"}),
		}).Create(&space).Error; err != nil {
			return fmt.Errorf("seed space %q: %w", entry.Title, err)
		}
	}

	return nil
}
