package services

import (
	"Folio/internal/authz"
	"Folio/internal/config"
	"Folio/internal/models"
	"Folio/internal/repository"
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// FolderNode is a folder with its sorted children attached.
type FolderNode struct {
	models.Folder
	Children []*FolderNode `json:"children"`
}

// Tree is the forest for one scope. Roots holds the canonical root or nothing.
// Orphans are folders of the scope that cannot be reached from the root;
// DuplicateRoots are the other parentless folders of the scope.
type Tree struct {
	Roots          []*FolderNode   `json:"roots"`
	Orphans        []models.Folder `json:"orphans"`
	DuplicateRoots []models.Folder `json:"duplicateRoots"`
}

func emptyTree() Tree {
	return Tree{Roots: []*FolderNode{}, Orphans: []models.Folder{}, DuplicateRoots: []models.Folder{}}
}

// BuildTree arranges a flat folder list under rootID. Records from other
// scopes than the root's are ignored.
func BuildTree(folders []models.Folder, rootID string, locale string) Tree {
	tree := emptyTree()
	if rootID == "" {
		return tree
	}

	var root *models.Folder
	for i := range folders {
		if folders[i].ID == rootID {
			root = &folders[i]
			break
		}
	}
	if root == nil {
		return tree
	}
	scopeKey := root.Scope.Key()

	nodes := make(map[string]*FolderNode, len(folders))
	inScope := make([]*FolderNode, 0, len(folders))
	for i := range folders {
		if folders[i].Scope.Key() != scopeKey {
			continue
		}
		if _, seen := nodes[folders[i].ID]; seen {
			continue
		}
		node := &FolderNode{Folder: folders[i], Children: []*FolderNode{}}
		nodes[node.ID] = node
		inScope = append(inScope, node)
	}

	rootNode := nodes[rootID]
	for _, node := range inScope {
		if node.ID == rootID {
			continue
		}
		if node.ParentID == nil {
			tree.DuplicateRoots = append(tree.DuplicateRoots, node.Folder)
			continue
		}
		if parent, ok := nodes[*node.ParentID]; ok && parent != node {
			parent.Children = append(parent.Children, node)
		}
	}

	// Anything not reachable from the root is an orphan: missing parent,
	// parent under a duplicate root, or a parent cycle.
	reachable := make(map[string]bool, len(inScope))
	collator := newCollator(locale)
	var walk func(node *FolderNode)
	walk = func(node *FolderNode) {
		reachable[node.ID] = true
		sortNodes(collator, node.Children)
		for _, child := range node.Children {
			walk(child)
		}
	}
	walk(rootNode)

	for _, node := range inScope {
		if reachable[node.ID] || node.ParentID == nil {
			continue
		}
		tree.Orphans = append(tree.Orphans, node.Folder)
	}
	sort.Slice(tree.Orphans, func(i, j int) bool { return tree.Orphans[i].ID < tree.Orphans[j].ID })
	sortByCreation(tree.DuplicateRoots)

	tree.Roots = append(tree.Roots, rootNode)
	return tree
}

func newCollator(locale string) *collate.Collator {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	return collate.New(tag, collate.IgnoreCase)
}

func sortNodes(collator *collate.Collator, nodes []*FolderNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		if c := collator.CompareString(nodes[i].Name, nodes[j].Name); c != 0 {
			return c < 0
		}
		return nodes[i].ID < nodes[j].ID
	})
}

// sortNames orders names with the locale collator.
func sortNames(locale string, names []string) []string {
	sorted := append([]string(nil), names...)
	collator := newCollator(locale)
	sort.SliceStable(sorted, func(i, j int) bool {
		return collator.CompareString(sorted[i], sorted[j]) < 0
	})
	return sorted
}

type TreeService interface {
	Snapshot(ctx context.Context, principal authz.Principal, scope models.Scope) (*Tree, error)
}

type treeServiceImpl struct {
	rootService   RootService
	folderRepo    repository.FolderRepository
	configuration *config.Configuration
}

func NewTreeService(rootService RootService, folderRepo repository.FolderRepository, configuration *config.Configuration) TreeService {
	return &treeServiceImpl{rootService: rootService, folderRepo: folderRepo, configuration: configuration}
}

// Snapshot resolves (or creates) the scope's root and returns its tree.
func (s *treeServiceImpl) Snapshot(ctx context.Context, principal authz.Principal, scope models.Scope) (*Tree, error) {
	root, err := s.rootService.ResolveRoot(ctx, principal, scope)
	if err != nil {
		return nil, err
	}
	normalized := root.Scope.Normalize()
	folders, err := s.folderRepo.Query(ctx, repository.FolderFilter{Scope: &normalized})
	if err != nil {
		return nil, err
	}
	tree := BuildTree(folders, root.ID, s.configuration.Repository.Locale)
	return &tree, nil
}
