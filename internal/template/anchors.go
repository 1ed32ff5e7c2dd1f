package template

import (
	"github.com/beevik/etree"
)

// Anchor names an element of the template the importer writes to.
type Anchor string

const (
	FileIdentifier     Anchor = "file_identifier"
	ResourceIdentifier Anchor = "resource_identifier"
	Title              Anchor = "title"
	AltTitle           Anchor = "alt_title"
	CreationDate       Anchor = "creation_date"
	// PublicationDate has no input column and is never written. Resolving
	// it rejects templates whose citation lacks a publication date.
	PublicationDate    Anchor = "publication_date"
	RevisionDate       Anchor = "revision_date"
	Abstract           Anchor = "abstract"

	// Dataset point of contact.
	ContactName     Anchor = "contact_name"
	ContactOrg      Anchor = "contact_org"
	ContactPosition Anchor = "contact_position"
	ContactAddress  Anchor = "contact_address"
	ContactEmail    Anchor = "contact_email"

	// Metadata contact.
	MetadataContactName     Anchor = "metadata_contact_name"
	MetadataContactOrg      Anchor = "metadata_contact_org"
	MetadataContactPosition Anchor = "metadata_contact_position"
	MetadataContactAddress  Anchor = "metadata_contact_address"
	MetadataContactEmail    Anchor = "metadata_contact_email"

	TopicCategory Anchor = "topic_category"

	// Keyword blocks and the first non-keyword child of each.
	InspireKeywords       Anchor = "inspire_keywords"
	InspireKeywordsAnchor Anchor = "inspire_keywords_anchor"
	FreeKeywords          Anchor = "free_keywords"
	FreeKeywordsAnchor    Anchor = "free_keywords_anchor"

	Constraints Anchor = "constraints"

	BoundingBox       Anchor = "bounding_box"
	West              Anchor = "west"
	East              Anchor = "east"
	South             Anchor = "south"
	North             Anchor = "north"
	ExtentDescription Anchor = "extent_description"

	TimePeriod    Anchor = "time_period"
	BeginPosition Anchor = "begin_position"
	EndPosition   Anchor = "end_position"

	Distribution     Anchor = "distribution"
	TransferOptions  Anchor = "transfer_options"
	TransferURL      Anchor = "transfer_url"
	TransferProtocol Anchor = "transfer_protocol"

	DataQualityScope Anchor = "data_quality_scope"
	Lineage          Anchor = "lineage"
	UpdateFrequency  Anchor = "update_frequency"
	Denominator      Anchor = "denominator"
)

const (
	identPath     = "./gmd:identificationInfo/gmd:MD_DataIdentification"
	citationPath  = identPath + "/gmd:citation/gmd:CI_Citation"
	pocPath       = identPath + "/gmd:pointOfContact/gmd:CI_ResponsibleParty"
	metaPath      = "./gmd:contact/gmd:CI_ResponsibleParty"
	addressPath   = "/gmd:contactInfo/gmd:CI_Contact/gmd:address/gmd:CI_Address"
	keywordsPath  = identPath + "/gmd:descriptiveKeywords/gmd:MD_Keywords"
	extentPath    = identPath + "/gmd:extent/gmd:EX_Extent"
	bboxPath      = extentPath + "/gmd:geographicElement/gmd:EX_GeographicBoundingBox"
	periodPath    = extentPath + "/gmd:temporalElement/gmd:EX_TemporalExtent/gmd:extent/gml:TimePeriod"
	distPath      = "./gmd:distributionInfo/gmd:MD_Distribution"
	onlinePath    = distPath + "/gmd:transferOptions/gmd:MD_DigitalTransferOptions/gmd:onLine/gmd:CI_OnlineResource"
	qualityPath   = "./gmd:dataQualityInfo/gmd:DQ_DataQuality"
	text          = "/gco:CharacterString"
	keywordTag    = "keyword"
	dateTypeQuery = "./gmd:dateType/gmd:CI_DateTypeCode"
)

type locator func(root *etree.Element) *etree.Element

var locators = map[Anchor]locator{
	FileIdentifier:     at("./gmd:fileIdentifier" + text),
	ResourceIdentifier: at(citationPath + "/gmd:identifier/gmd:MD_Identifier/gmd:code" + text),
	Title:              at(citationPath + "/gmd:title" + text),
	AltTitle:           at(citationPath + "/gmd:alternateTitle" + text),
	CreationDate:       citationDate("creation"),
	PublicationDate:    citationDate("publication"),
	RevisionDate:       citationDate("revision"),
	Abstract:           at(identPath + "/gmd:abstract" + text),

	ContactName:     at(pocPath + "/gmd:individualName" + text),
	ContactOrg:      at(pocPath + "/gmd:organisationName" + text),
	ContactPosition: at(pocPath + "/gmd:positionName" + text),
	ContactAddress:  at(pocPath + addressPath + "/gmd:deliveryPoint" + text),
	ContactEmail:    at(pocPath + addressPath + "/gmd:electronicMailAddress" + text),

	MetadataContactName:     at(metaPath + "/gmd:individualName" + text),
	MetadataContactOrg:      at(metaPath + "/gmd:organisationName" + text),
	MetadataContactPosition: at(metaPath + "/gmd:positionName" + text),
	MetadataContactAddress:  at(metaPath + addressPath + "/gmd:deliveryPoint" + text),
	MetadataContactEmail:    at(metaPath + addressPath + "/gmd:electronicMailAddress" + text),

	TopicCategory: at(identPath + "/gmd:topicCategory"),

	InspireKeywords:       nth(keywordsPath, 0),
	InspireKeywordsAnchor: firstNonKeyword(nth(keywordsPath, 0)),
	FreeKeywords:          nth(keywordsPath, 1),
	FreeKeywordsAnchor:    firstNonKeyword(nth(keywordsPath, 1)),

	Constraints: at(identPath + "/gmd:resourceConstraints/gmd:MD_Constraints"),

	BoundingBox:       parent(at(bboxPath)),
	West:              at(bboxPath + "/gmd:westBoundLongitude/gco:Decimal"),
	East:              at(bboxPath + "/gmd:eastBoundLongitude/gco:Decimal"),
	South:             at(bboxPath + "/gmd:southBoundLatitude/gco:Decimal"),
	North:             at(bboxPath + "/gmd:northBoundLatitude/gco:Decimal"),
	ExtentDescription: at(extentPath + "/gmd:geographicElement/gmd:EX_GeographicDescription/gmd:geographicIdentifier/gmd:MD_Identifier/gmd:code" + text),

	TimePeriod:    at(periodPath),
	BeginPosition: at(periodPath + "/gml:beginPosition"),
	EndPosition:   at(periodPath + "/gml:endPosition"),

	Distribution:     at(distPath),
	TransferOptions:  at(distPath + "/gmd:transferOptions"),
	TransferURL:      at(onlinePath + "/gmd:linkage/gmd:URL"),
	TransferProtocol: at(onlinePath + "/gmd:protocol" + text),

	DataQualityScope: at(qualityPath + "/gmd:scope/gmd:DQ_Scope/gmd:level/gmd:MD_ScopeCode"),
	Lineage:          at(qualityPath + "/gmd:lineage/gmd:LI_Lineage/gmd:statement" + text),
	UpdateFrequency:  at(identPath + "/gmd:resourceMaintenance/gmd:MD_MaintenanceInformation/gmd:maintenanceAndUpdateFrequency/gmd:MD_MaintenanceFrequencyCode"),
	Denominator:      at(identPath + "/gmd:spatialResolution/gmd:MD_Resolution/gmd:equivalentScale/gmd:MD_RepresentativeFraction/gmd:denominator/gco:Integer"),
}

func at(path string) locator {
	return func(root *etree.Element) *etree.Element {
		return root.FindElement(path)
	}
}

func nth(path string, i int) locator {
	return func(root *etree.Element) *etree.Element {
		found := root.FindElements(path)
		if i >= len(found) {
			return nil
		}
		return found[i]
	}
}

func parent(inner locator) locator {
	return func(root *etree.Element) *etree.Element {
		el := inner(root)
		if el == nil {
			return nil
		}
		return el.Parent()
	}
}

// citationDate finds the gco:Date of the citation date whose CI_DateTypeCode
// carries code.
func citationDate(code string) locator {
	return func(root *etree.Element) *etree.Element {
		for _, d := range root.FindElements(citationPath + "/gmd:date/gmd:CI_Date") {
			typ := d.FindElement(dateTypeQuery)
			if typ == nil || typ.SelectAttrValue("codeListValue", "") != code {
				continue
			}
			return d.FindElement("./gmd:date/gco:Date")
		}
		return nil
	}
}

// firstNonKeyword finds the first child element of a keyword block that is
// not a gmd:keyword. New keywords go in front of it.
func firstNonKeyword(block locator) locator {
	return func(root *etree.Element) *etree.Element {
		el := block(root)
		if el == nil {
			return nil
		}
		for _, child := range el.ChildElements() {
			if child.Tag != keywordTag {
				return child
			}
		}
		return nil
	}
}
