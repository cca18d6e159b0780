package router

import (
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// saveUpload 落盘商品图片：清洗文件名 + 时间戳去重，
// 返回相对上传目录的路径（正斜杠），和库里 image_path 的约定一致
func saveUpload(c *gin.Context, fh *multipart.FileHeader, dir string) (string, error) {
	name := sanitizeFilename(filepath.Base(fh.Filename))
	if name == "" {
		return "", BadRequest("Please choose an image file.")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", Internal("create upload dir failed", err)
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(name, ext)
	unique := strings.ToLower(fmt.Sprintf("%s-%d%s", base, time.Now().Unix(), ext))

	dst := filepath.Join(dir, unique)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", Internal("save upload failed", err)
	}
	return "uploads/" + unique, nil
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
