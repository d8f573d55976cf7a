package template

import "github.com/fraud-tools/scam-report-builder/pkg/models/domain"

// builtinTemplates are always available and immutable. Custom templates are
// layered on top of these at query time.
var builtinTemplates = []domain.Template{
	{
		Key:         "advance-fee",
		Name:        "Advance-Fee Scam",
		Description: "Fee to be paid to receive an inheritance",
		Builtin:     true,
		Sections: []domain.TemplateSection{
			{Title: "Main Info:", Fields: []string{
				domain.FieldType,
				domain.FieldSummary,
				domain.FieldAlias,
				domain.FieldEmails,
				domain.FieldWebsites,
				domain.FieldIPs,
				domain.FieldLocations,
				domain.FieldStarted,
			}},
			{Title: "Payment Information:", Fields: []string{
				domain.FieldAmount,
				domain.FieldBankInfo,
				domain.FieldOtherPayments,
			}},
			{Title: "Evidence:", Fields: []string{
				domain.FieldScammerNames,
				string(domain.CategoryPassportIDs),
				string(domain.CategoryScammerPhotos),
				string(domain.CategoryVictimIDs),
				string(domain.CategoryOthers),
			}},
			{Title: "Remarks:", Fields: []string{
				domain.FieldRemarks,
			}},
		},
		Fields: map[string]domain.FieldDef{
			domain.FieldType: {
				Type:    domain.FieldTypeText,
				Label:   "Type of scam",
				Default: "Advance-Fee Scam",
			},
			domain.FieldSummary: {
				Type:    domain.FieldTypeText,
				Label:   "Short summary",
				Default: "Fee to be paid to receive an inheritance",
			},
			domain.FieldAlias: {
				Type:    domain.FieldTypeList,
				Label:   "Scammer Alias(es)",
				Button:  "+ Add alias",
				Default: []string{""},
			},
			domain.FieldEmails: {
				Type:    domain.FieldTypeList,
				Label:   "Scammer Email(s)",
				Button:  "+ Add email",
				Default: []string{""},
			},
			domain.FieldWebsites: {
				Type:   domain.FieldTypeList,
				Label:  "Scammer Website(s)",
				Button: "+ Add Scammer Website",
			},
			domain.FieldIPs: {
				Type:   domain.FieldTypeList,
				Label:  "IP(s)",
				Button: "+ Add IP",
			},
			domain.FieldLocations: {
				Type:   domain.FieldTypeList,
				Label:  "Geolocation(s)",
				Button: "+ Add geolocation",
			},
			domain.FieldStarted: {
				Type:   domain.FieldTypeDate,
				Label:  "Started",
				Format: "MM/DD/YY",
			},
			domain.FieldBankInfo: {
				Type:        domain.FieldTypeMultiline,
				Label:       "Bank Information",
				Placeholder: "Paste bank details from scammer email here...",
			},
			domain.FieldOtherPayments: {
				Type:  domain.FieldTypeOtherPayments,
				Label: "Other Payment Methods",
			},
			domain.FieldAmount: {
				Type:  domain.FieldTypeText,
				Label: "Fee/Amount",
			},
			domain.FieldScammerNames: {
				Type:   domain.FieldTypeList,
				Label:  "Scammers real name:",
				Button: "+ Add name",
			},
			string(domain.CategoryPassportIDs): {
				Type:   domain.FieldTypeImageList,
				Label:  "Scammer's Passport/ID",
				Button: "+ Add Passport/ID",
			},
			string(domain.CategoryScammerPhotos): {
				Type:   domain.FieldTypeImageList,
				Label:  "Photo of Scammer",
				Button: "+ Add Photo",
			},
			string(domain.CategoryVictimIDs): {
				Type:   domain.FieldTypeImageList,
				Label:  "Possible Victim / Money-Mule ID",
				Button: "+ Add ID",
			},
			string(domain.CategoryOthers): {
				Type:        domain.FieldTypeImages,
				Label:       "Others",
				Button:      "+ Add Image",
				Placeholder: "Add other scam-related images/screenshots",
			},
			domain.FieldRemarks: {
				Type:   domain.FieldTypeList,
				Label:  "Remarks",
				Button: "+ Add remark",
			},
		},
	},
}

// alwaysIncludedFields are merged into every custom template on save, the
// minimum a report form needs to generate a titled, traceable document.
var alwaysIncludedFields = map[string]domain.FieldDef{
	domain.FieldType: {
		Type:     domain.FieldTypeText,
		Label:    "Type of scam",
		Category: "Main Info",
	},
	domain.FieldSummary: {
		Type:     domain.FieldTypeText,
		Label:    "Short summary",
		Category: "Main Info",
	},
	domain.FieldFilenameName: {
		Type:     domain.FieldTypeText,
		Label:    "Name for filename generation (This name will be used for the report filename)",
		Category: "Main Info",
	},
	domain.FieldRemarks: {
		Type:     domain.FieldTypeList,
		Label:    "Remarks",
		Button:   "+ Add remark",
		Category: "Remarks",
	},
}
