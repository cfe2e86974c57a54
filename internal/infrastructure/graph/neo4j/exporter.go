// Package neo4j mirrors completed document structures into a graph
// database so they can be explored with Cypher. Export failures are
// reported to the caller but never fail document processing.
package neo4j

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	"github.com/kirillkom/docinsight/internal/core/domain"
)

type Exporter struct {
	driver   neo4j.DriverWithContext
	database string
}

func New(uri, user, password, database string) (*Exporter, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(user, password, ""))
	if err != nil {
		return nil, fmt.Errorf("create neo4j driver: %w", err)
	}
	if database == "" {
		database = "neo4j"
	}
	return &Exporter{driver: driver, database: database}, nil
}

func (e *Exporter) Close(ctx context.Context) error {
	return e.driver.Close(ctx)
}

func (e *Exporter) ExportStructure(ctx context.Context, doc *domain.Document, nodes []domain.StructureNode) error {
	// Replace any previous export for this document before writing the
	// new tree, so re-processing stays idempotent.
	_, err := neo4j.ExecuteQuery(ctx, e.driver, `
MATCH (n:StructureNode {document_id: $document_id})
DETACH DELETE n
`,
		map[string]any{"document_id": doc.ID},
		neo4j.EagerResultTransformer,
		neo4j.ExecuteQueryWithDatabase(e.database),
	)
	if err != nil {
		return fmt.Errorf("clear previous export: %w", err)
	}

	for _, node := range nodes {
		_, err := neo4j.ExecuteQuery(ctx, e.driver, `
MERGE (n:StructureNode {id: $id})
SET n.document_id = $document_id,
	n.filename = $filename,
	n.type = $type,
	n.title = $title,
	n.level = $level,
	n.order = $order,
	n.word_count = $word_count,
	n.importance = $importance
`,
			map[string]any{
				"id":          node.ID,
				"document_id": doc.ID,
				"filename":    doc.Filename,
				"type":        string(node.Type),
				"title":       node.Title,
				"level":       node.Level,
				"order":       node.Position.Order,
				"word_count":  node.Metadata.WordCount,
				"importance":  node.Metadata.Importance,
			},
			neo4j.EagerResultTransformer,
			neo4j.ExecuteQueryWithDatabase(e.database),
		)
		if err != nil {
			return fmt.Errorf("merge node %s: %w", node.ID, err)
		}
	}

	for _, node := range nodes {
		if node.ParentID == "" {
			continue
		}
		_, err := neo4j.ExecuteQuery(ctx, e.driver, `
MATCH (parent:StructureNode {id: $parent_id})
MATCH (child:StructureNode {id: $child_id})
MERGE (parent)-[:CONTAINS]->(child)
`,
			map[string]any{
				"parent_id": node.ParentID,
				"child_id":  node.ID,
			},
			neo4j.EagerResultTransformer,
			neo4j.ExecuteQueryWithDatabase(e.database),
		)
		if err != nil {
			return fmt.Errorf("link node %s: %w", node.ID, err)
		}
	}
	return nil
}
