package jsonfile

import (
	"context"
	"fmt"
	"strconv"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"
	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/liveticker/internal/domain/fixture"
	"github.com/riskibarqy/liveticker/internal/usecase"
)

// SaveResults edits the stored document in place. Fields this package does not model,
// null standings and documents without a competition block survive unchanged.
func (r *CompetitionRepository) SaveResults(ctx context.Context, location string, generatedAt time.Time, fixtures []*fixture.Fixture) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := resolvePath(r.dataDir, location)
	raw, err := readDocument(path)
	if err != nil {
		return err
	}

	root, err := sonic.Get(raw)
	if err != nil {
		return fmt.Errorf("%w: decode %s: %v", usecase.ErrInvalidDocument, path, err)
	}
	if err := root.LoadAll(); err != nil {
		return fmt.Errorf("%w: decode %s: %v", usecase.ErrInvalidDocument, path, err)
	}
	matches := root.Get("matches")
	if matches == nil || matches.TypeSafe() != ast.V_ARRAY {
		return fmt.Errorf("%w: %s has no matches array", usecase.ErrInvalidDocument, path)
	}

	byID := make(map[string]*fixture.Fixture, len(fixtures))
	for _, item := range fixtures {
		if item != nil && item.ID != "" {
			byID[item.ID] = item
		}
	}

	count, err := matches.Len()
	if err != nil {
		return crerr.Wrapf(err, "read matches of %s", path)
	}
	for i := 0; i < count; i++ {
		match := matches.Index(i)
		if match == nil || match.TypeSafe() != ast.V_OBJECT {
			continue
		}
		item, ok := byID[nodeText(match.Get("id"))]
		if !ok {
			continue
		}
		if err := patchMatch(match, item); err != nil {
			return crerr.Wrapf(err, "patch match %s in %s", item.ID, path)
		}
	}

	if _, err := root.Set("generatedAt", ast.NewString(generatedAt.UTC().Format(GeneratedAtLayout))); err != nil {
		return crerr.Wrapf(err, "stamp %s", path)
	}
	return writeDocument(path, &root)
}

func patchMatch(match *ast.Node, item *fixture.Fixture) error {
	if _, err := match.Set("status", ast.NewString(fixture.NormalizeStatus(item.Status))); err != nil {
		return err
	}

	home := scoreNode(item.Score.FullTime.Home)
	away := scoreNode(item.Score.FullTime.Away)

	score := match.Get("score")
	if score == nil || score.TypeSafe() != ast.V_OBJECT {
		_, err := match.Set("score", ast.NewObject([]ast.Pair{
			{Key: "fullTime", Value: ast.NewObject([]ast.Pair{{Key: "home", Value: home}, {Key: "away", Value: away}})},
		}))
		return err
	}

	fullTime := score.Get("fullTime")
	if fullTime == nil || fullTime.TypeSafe() != ast.V_OBJECT {
		_, err := score.Set("fullTime", ast.NewObject([]ast.Pair{{Key: "home", Value: home}, {Key: "away", Value: away}}))
		return err
	}
	if _, err := fullTime.Set("home", home); err != nil {
		return err
	}
	_, err := fullTime.Set("away", away)
	return err
}

func scoreNode(v *int) ast.Node {
	if v == nil {
		return ast.NewNull()
	}
	return ast.NewNumber(strconv.Itoa(*v))
}

// nodeText reads string and numeric ids alike.
func nodeText(node *ast.Node) string {
	if node == nil || !node.Exists() {
		return ""
	}
	switch node.TypeSafe() {
	case ast.V_STRING:
		v, _ := node.String()
		return v
	case ast.V_NUMBER:
		v, _ := node.Raw()
		return v
	}
	return ""
}
