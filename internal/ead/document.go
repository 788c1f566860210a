package ead

import "encoding/xml"

// Namespace is the EAD 2002 namespace.
const Namespace = "urn:isbn:1-931666-22-9"

const (
	xlinkNamespace = "http://www.w3.org/1999/xlink"
	xsiNamespace   = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation = Namespace + " http://www.loc.gov/ead/ead.xsd"

	creationText = "This file was exported from the MicroArchives publication tool"
)

type document struct {
	XMLName        xml.Name `xml:"ead"`
	Xmlns          string   `xml:"xmlns,attr"`
	XmlnsXlink     string   `xml:"xmlns:xlink,attr"`
	XmlnsXsi       string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	Header         header   `xml:"eadheader"`
	ArchDesc       archDesc `xml:"archdesc"`
}

type header struct {
	CountryEncoding    string      `xml:"countryencoding,attr"`
	DateEncoding       string      `xml:"dateencoding,attr"`
	ScriptEncoding     string      `xml:"scriptencoding,attr"`
	RepositoryEncoding string      `xml:"repositoryencoding,attr"`
	RelatedEncoding    string      `xml:"relatedencoding,attr"`
	EADID              eadID       `xml:"eadid"`
	FileDesc           fileDesc    `xml:"filedesc"`
	ProfileDesc        profileDesc `xml:"profiledesc"`
}

type eadID struct {
	URL  string `xml:"url,attr,omitempty"`
	Text string `xml:",chardata"`
}

type fileDesc struct {
	TitleStmt       titleStmt        `xml:"titlestmt"`
	PublicationStmt *publicationStmt `xml:"publicationstmt,omitempty"`
}

type titleStmt struct {
	TitleProper string `xml:"titleproper"`
}

type publicationStmt struct {
	AddressLines []string `xml:"address>addressline"`
}

type profileDesc struct {
	Creation  creation  `xml:"creation"`
	LangUsage langUsage `xml:"langusage"`
}

type creation struct {
	Text string  `xml:",chardata"`
	Date eadDate `xml:"date"`
}

type eadDate struct {
	Normal string `xml:"normal,attr"`
	Text   string `xml:",chardata"`
}

type langUsage struct {
	Languages []languageElem `xml:"language"`
}

type languageElem struct {
	LangCode string `xml:"langcode,attr"`
	Name     string `xml:",chardata"`
}

type archDesc struct {
	Level        string       `xml:"level,attr"`
	Did          did          `xml:"did"`
	BiogHist     *textBlock   `xml:"bioghist,omitempty"`
	ScopeContent *textBlock   `xml:"scopecontent,omitempty"`
	ProcessInfo  *processInfo `xml:"processinfo,omitempty"`
	Dsc          *dsc         `xml:"dsc,omitempty"`
}

type did struct {
	UnitID       string        `xml:"unitid"`
	UnitTitle    string        `xml:"unittitle,omitempty"`
	PhysDesc     *physDesc     `xml:"physdesc,omitempty"`
	LangMaterial *langMaterial `xml:"langmaterial,omitempty"`
}

type physDesc struct {
	Label  string `xml:"label,attr"`
	Extent string `xml:"extent"`
}

type langMaterial struct {
	Languages []languageElem `xml:"language"`
}

type textBlock struct {
	Paragraphs []string `xml:"p"`
}

type processInfo struct {
	Paragraphs []paragraph `xml:"p"`
}

type paragraph struct {
	Text string   `xml:",chardata"`
	Date *eadDate `xml:"date,omitempty"`
}

type dsc struct {
	Components []component
}

// component is a c1..cN section; XMLName carries the depth-numbered tag.
type component struct {
	XMLName    xml.Name
	Level      string     `xml:"level,attr"`
	Did        did        `xml:"did"`
	Scope      *textBlock `xml:"scopecontent,omitempty"`
	Components []component
}
