package reference

import "tyre-cost/internal/errors"

// Data bundles everything the engine and its presentation layer read
type Data struct {
	Constants EconomicConstants
	Catalog   *Catalog
}

// Default returns the compiled-in reference data
func Default() *Data {
	return &Data{
		Constants: DefaultConstants(),
		Catalog:   DefaultCatalog(),
	}
}

// Validate checks constants and catalog together
func (d *Data) Validate() error {
	if err := d.Constants.Validate(); err != nil {
		return err
	}
	if d.Catalog == nil || d.Catalog.Len() == 0 {
		return errors.Config("supplier catalog is empty")
	}
	return nil
}
