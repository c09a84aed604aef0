package mapper

import (
	"Folio/internal/dto"
	"Folio/internal/helpers"
	"Folio/internal/models"
	"Folio/internal/services"
)

func ToFolderDTO(folder *models.Folder) *dto.FolderDTO {
	scope := folder.Scope.Normalize()
	return &dto.FolderDTO{
		ID:           folder.ID,
		ParentID:     folder.ParentID,
		Name:         folder.Name,
		AreaID:       scope.AreaID,
		ProcesoID:    scope.ProcesoID,
		SubprocesoID: scope.SubprocesoID,
		CreatedAt:    folder.CreatedAt,
		UpdatedAt:    folder.UpdatedAt,
	}
}

func toFolderNodeDTO(node *services.FolderNode) *dto.FolderDTO {
	folderDTO := ToFolderDTO(&node.Folder)
	folderDTO.Children = make([]*dto.FolderDTO, 0, len(node.Children))
	for _, child := range node.Children {
		folderDTO.Children = append(folderDTO.Children, toFolderNodeDTO(child))
	}
	return folderDTO
}

func ToTreeDTO(tree *services.Tree) *dto.TreeDTO {
	treeDTO := &dto.TreeDTO{
		Roots:          make([]*dto.FolderDTO, 0, len(tree.Roots)),
		Orphans:        make([]*dto.FolderDTO, 0, len(tree.Orphans)),
		DuplicateRoots: make([]*dto.FolderDTO, 0, len(tree.DuplicateRoots)),
	}
	for _, root := range tree.Roots {
		treeDTO.Roots = append(treeDTO.Roots, toFolderNodeDTO(root))
	}
	for i := range tree.Orphans {
		treeDTO.Orphans = append(treeDTO.Orphans, ToFolderDTO(&tree.Orphans[i]))
	}
	for i := range tree.DuplicateRoots {
		treeDTO.DuplicateRoots = append(treeDTO.DuplicateRoots, ToFolderDTO(&tree.DuplicateRoots[i]))
	}
	return treeDTO
}

func ToFileDTO(file *models.File) *dto.FileDTO {
	return &dto.FileDTO{
		ID:          file.ID,
		FolderID:    file.FolderID,
		Name:        file.Name,
		Extension:   helpers.GetFileType(file.Name),
		ContentType: file.ContentType,
		Size:        file.Size,
		SHA256:      file.SHA256,
		DownloadURL: file.DownloadURL,
		CreatedAt:   file.CreatedAt,
	}
}

func ToFileDTOs(files []models.File) []*dto.FileDTO {
	result := make([]*dto.FileDTO, 0, len(files))
	for i := range files {
		result = append(result, ToFileDTO(&files[i]))
	}
	return result
}
