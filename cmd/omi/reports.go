package cmd

import (
	"github.com/OpenEnergyPlatform/omi/internal/completeness"
	"github.com/OpenEnergyPlatform/omi/internal/metadata"
	"github.com/OpenEnergyPlatform/omi/internal/ui"
	"github.com/OpenEnergyPlatform/omi/internal/validator"
)

func fieldKeys(keys []metadata.Key) []ui.FieldKey {
	out := make([]ui.FieldKey, len(keys))
	for i, k := range keys {
		out[i] = k
	}
	return out
}

func completenessReport(r completeness.Report) ui.CompletenessReport {
	out := ui.CompletenessReport{
		DocID:           r.DocID,
		Family:          r.Family,
		Score:           r.Score,
		Passed:          r.Passed,
		Total:           r.Total,
		MissingRequired: fieldKeys(r.MissingRequired),
		MissingOptional: fieldKeys(r.MissingOptional),
	}
	for _, res := range r.Resources {
		out.Resources = append(out.Resources, ui.ResourceReport{
			Resource:        res.Resource,
			Score:           res.Score,
			Passed:          res.Passed,
			Total:           res.Total,
			MissingRequired: fieldKeys(res.MissingRequired),
			MissingOptional: fieldKeys(res.MissingOptional),
		})
	}
	return out
}

func validationReport(r validator.ValidationResult) ui.ValidationReport {
	out := ui.ValidationReport{
		DocID:             r.DocID,
		Version:           r.Version,
		Dialect:           r.Dialect,
		Valid:             r.Valid,
		Errors:            r.Errors,
		Warnings:          r.Warnings,
		CompletenessScore: r.CompletenessScore,
		MissingRequired:   fieldKeys(r.MissingRequired),
		MissingOptional:   fieldKeys(r.MissingOptional),
	}
	for _, res := range r.ResourceResults {
		out.ResourceResults = append(out.ResourceResults, ui.ResourceValidationResult{
			Resource:          res.Resource,
			CompletenessScore: res.CompletenessScore,
			MissingRequired:   fieldKeys(res.MissingRequired),
			MissingOptional:   fieldKeys(res.MissingOptional),
			Errors:            res.Errors,
			Warnings:          res.Warnings,
		})
	}
	return out
}
