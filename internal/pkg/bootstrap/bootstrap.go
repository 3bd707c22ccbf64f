// Package bootstrap seeds an empty database before the server starts taking
// requests. It runs exactly once per process start, from main, so request
// handling never has to check an initialization flag.
package bootstrap

import (
	"gorm.io/gorm"
	"k8s.io/klog/v2"

	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/repository"
)

type seedChapter struct {
	titleEN, titleCKB, descEN, descCKB, icon string
}

var seedChapters = []seedChapter{
	{"Histology", "هیستۆلۆجی",
		"The study of tissues and their microscopic structure, including epithelial, connective, muscle, and nervous tissues.",
		"خوێندنی شانەکان و پێکهاتە مایکرۆسکۆپیەکانیان، لەوانە شانەکانی ئەپیتێلیاڵ، پەیوەست، ماسولکە و نەرڤی.",
		"fas fa-microscope"},
	{"Embryology", "ئێمبرۆلۆجی",
		"Developmental biology focusing on embryonic development from fertilization through organogenesis.",
		"بایۆلۆجی گەشەپێدان کە سەرنج دەدات بە گەشەپێدانی ئێمبرۆ لە کتنییەوە تا درووستبوونی ئەندامەکان.",
		"fas fa-baby"},
	{"Plant Anatomy", "ئەناتۆمیای ڕووەک",
		"Structure and function of plant organs including roots, stems, leaves, and reproductive structures.",
		"پێکهاتە و کارەکانی ئەندامەکانی ڕووەک لەوانە ڕەگ، شەق، گەڵا و پێکهاتەکانی زاوزێ.",
		"fas fa-leaf"},
	{"Parasitology", "پاراسیتۆلۆجی",
		"Study of parasites, their life cycles, host-parasite relationships, and parasitic diseases.",
		"خوێندنی گیرۆکەکان، سوڕی ژیانیان، پەیوەندی میوان-گیرۆکە و نەخۆشیە گیرۆکیەکان.",
		"fas fa-bug"},
	{"Hematology", "هیماتۆلۆجی",
		"Study of blood, blood-forming organs, and blood diseases including cellular components and plasma.",
		"خوێندنی خوێن، ئەندامە خوێنساز و نەخۆشیەکانی خوێن لەگەڵ پێکهاتە خانەیی و پلازما.",
		"fas fa-tint"},
	{"Microbiology", "مایکرۆبایۆلۆجی",
		"Study of microorganisms including bacteria, viruses, fungi, and their roles in health and disease.",
		"خوێندنی زیندەوەرە مایکرۆسکۆپیەکان لەوانە بەکتریا، ڤایرۆس، کەمترشی و ڕۆڵیان لە تەندروستی و نەخۆشیدا.",
		"fas fa-virus"},
	{"Entomology", "ئینتۆمۆلۆجی",
		"Scientific study of insects, their classification, morphology, physiology, and ecological importance.",
		"خوێندنی زانستی مێروو، پۆلێنکردنیان، مۆرفۆلۆجی، فیزیۆلۆجی و گرنگی ژینگەییان.",
		"fas fa-spider"},
	{"Algae Studies", "خوێندنی ئاڵگا",
		"Study of algae, their diversity, classification, structure, and ecological significance.",
		"خوێندنی ئاڵگاکان، جۆراوجۆریان، پۆلێنکردن، پێکهاتە و گرنگی ژینگەییان.",
		"fas fa-water"},
}

// Run seeds the study chapters and the initial admin accounts when the
// database is empty. Idempotent: a populated database is left alone.
func Run(db *gorm.DB, adminPassword string) error {
	var count int64
	if err := db.Model(&model.Chapter{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	chapters := repository.NewChapterRepository(db)
	for _, seed := range seedChapters {
		chapter := &model.Chapter{
			TitleEN:        seed.titleEN,
			TitleCKB:       seed.titleCKB,
			DescriptionEN:  seed.descEN,
			DescriptionCKB: seed.descCKB,
			Icon:           seed.icon,
			IsActive:       true,
		}
		if err := chapters.Create(chapter); err != nil {
			return err
		}
	}

	admin := &model.User{
		Username: "admin",
		Email:    "admin@bioguide.edu",
		Role:     "super_admin",
		IsActive: true,
	}
	if err := admin.SetPassword(adminPassword); err != nil {
		return err
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	var histology model.Chapter
	if err := db.Where("title_en = ?", "Histology").First(&histology).Error; err != nil {
		return err
	}
	chapterAdmin := &model.User{
		Username:  "histology_admin",
		Email:     "histology@bioguide.edu",
		Role:      "chapter_admin",
		ChapterID: &histology.ID,
		IsActive:  true,
	}
	if err := chapterAdmin.SetPassword(adminPassword); err != nil {
		return err
	}
	if err := db.Create(chapterAdmin).Error; err != nil {
		return err
	}

	klog.Infof("seeded %d chapters and initial admin accounts", len(seedChapters))
	return nil
}
