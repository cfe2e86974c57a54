package domain

// BlockType is an open enumeration: adapters for external parse results may
// introduce values beyond the ones the local pipeline emits.
type BlockType string

const (
	BlockTitle     BlockType = "title"
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockListItem  BlockType = "list_item"
	BlockSubtitle  BlockType = "subtitle"
	BlockContact   BlockType = "contact"
	BlockQuote     BlockType = "quote"
	BlockCode      BlockType = "code"
)

type NodeType string

const (
	NodeDocument   NodeType = "document"
	NodeChapter    NodeType = "chapter"
	NodeSection    NodeType = "section"
	NodeSubsection NodeType = "subsection"
	NodeParagraph  NodeType = "paragraph"
	NodeList       NodeType = "list"
	NodeContact    NodeType = "contact"
)

// BlockPosition is a pseudo-layout estimate: the fallback pipeline always
// reports page 1 and a monotonically increasing y offset.
type BlockPosition struct {
	Page   int     `json:"page"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type BlockMetadata struct {
	Confidence float64  `json:"confidence"`
	WordCount  int      `json:"word_count"`
	Language   string   `json:"language,omitempty"`
	Tags       []string `json:"tags,omitempty"`
}

// ContentBlock is one contiguous unit of document text. Blocks are created
// once per analysis pass and never mutated; content is non-empty after
// trimming (blank lines never produce blocks).
type ContentBlock struct {
	ID       string        `json:"id"`
	Type     BlockType     `json:"type"`
	Content  string        `json:"content"`
	Position BlockPosition `json:"position"`
	Metadata BlockMetadata `json:"metadata"`
}

type NodePosition struct {
	Page  int `json:"page"`
	Order int `json:"order"`
}

type NodeMetadata struct {
	WordCount  int      `json:"word_count"`
	Importance float64  `json:"importance"`
	Keywords   []string `json:"keywords,omitempty"`
}

// StructureNode is one node of the hierarchical outline. Exactly one root
// per document (level 0, no parent); ChildIDs of a node is exactly the set
// of nodes whose ParentID equals that node's ID, in document order.
type StructureNode struct {
	ID              string       `json:"id"`
	Type            NodeType     `json:"type"`
	Title           string       `json:"title"`
	Level           int          `json:"level"`
	Position        NodePosition `json:"position"`
	ParentID        string       `json:"parent_id,omitempty"`
	ChildIDs        []string     `json:"child_ids"`
	ContentBlockIDs []string     `json:"content_block_ids"`
	Metadata        NodeMetadata `json:"metadata"`
}

type CellType string

const (
	CellText    CellType = "text"
	CellNumber  CellType = "number"
	CellDate    CellType = "date"
	CellBoolean CellType = "boolean"
	CellEmpty   CellType = "empty"
)

type TableCell struct {
	Value    string   `json:"value"`
	Type     CellType `json:"type"`
	Colspan  int      `json:"colspan"`
	Rowspan  int      `json:"rowspan"`
	IsHeader bool     `json:"is_header"`
}

type TableStructure struct {
	Rows      int  `json:"rows"`
	Columns   int  `json:"columns"`
	HasHeader bool `json:"has_header"`
	HasFooter bool `json:"has_footer"`
}

type TableMetadata struct {
	Title      string     `json:"title,omitempty"`
	Confidence float64    `json:"confidence"`
	DataTypes  []CellType `json:"data_types,omitempty"`
}

// TableData is a table recovered from a contiguous run of table-looking
// lines. Retained rows have at least 2 cells; Structure.Columns is the
// maximum row length (rows may be ragged).
type TableData struct {
	ID        string         `json:"id"`
	Position  BlockPosition  `json:"position"`
	Structure TableStructure `json:"structure"`
	Data      [][]TableCell  `json:"data"`
	Metadata  TableMetadata  `json:"metadata"`
}

type FigureType string

const (
	FigureImage        FigureType = "image"
	FigureChart        FigureType = "chart"
	FigureDiagram      FigureType = "diagram"
	FigureGraph        FigureType = "graph"
	FigureIllustration FigureType = "illustration"
	FigurePhoto        FigureType = "photo"
	FigureFlowchart    FigureType = "flowchart"
	FigureArchitecture FigureType = "architecture"
	FigureScreenshot   FigureType = "screenshot"
)

type FigureContent struct {
	ImageURL    string `json:"image_url,omitempty"`
	Description string `json:"description,omitempty"`
	Caption     string `json:"caption,omitempty"`
	AltText     string `json:"alt_text,omitempty"`
}

type FigureMetadata struct {
	Confidence    float64  `json:"confidence"`
	ExtractedText string   `json:"extracted_text,omitempty"`
	Colors        []string `json:"colors,omitempty"`
	Objects       []string `json:"objects,omitempty"`
	IsReference   bool     `json:"is_reference"`
}

// FigureData is a placeholder for a detected figure. Figures synthesized
// from text mentions carry IsReference=true and never an ImageURL.
type FigureData struct {
	ID       string         `json:"id"`
	Type     FigureType     `json:"type"`
	Position BlockPosition  `json:"position"`
	Content  FigureContent  `json:"content"`
	Metadata FigureMetadata `json:"metadata"`
}

// AnalysisResult is the complete output of one analysis pass over a
// document, whichever path produced it.
type AnalysisResult struct {
	ContentBlocks  []ContentBlock  `json:"content_blocks"`
	StructureNodes []StructureNode `json:"structure_nodes"`
	Tables         []TableData     `json:"tables"`
	Figures        []FigureData    `json:"figures"`
}
