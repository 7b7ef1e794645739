// file: internals/seeds/seed.go
package seeds

import (
	"log"

	"gorm.io/gorm"

	accountsModel "hango_backend/internals/features/accounts/model"
	accountsSvc "hango_backend/internals/features/accounts/service"
	calendarModel "hango_backend/internals/features/calendar/model"
	classesModel "hango_backend/internals/features/classes/model"
	menuModel "hango_backend/internals/features/menu/model"
	menuSvc "hango_backend/internals/features/menu/service"
	"hango_backend/internals/helpers/weekday"
)

// Run popula os dados mínimos de um ambiente novo. Idempotente: tudo
// checa existência antes de criar.
func Run(db *gorm.DB) {
	seedCutoff(db)
	seedUsers(db)
	seedClasses(db)
	seedMenu(db)
	log.Println("🌱 Seed concluído.")
}

func seedCutoff(db *gorm.DB) {
	var count int64
	db.Model(&calendarModel.CutoffSettingModel{}).Count(&count)
	if count > 0 {
		return
	}
	if err := db.Create(&calendarModel.CutoffSettingModel{CutoffSettingTime: "15:00"}).Error; err != nil {
		log.Printf("seed cutoff err: %v", err)
	}
}

func seedUser(db *gorm.DB, cpf, first, last, role, password string) {
	var count int64
	db.Model(&accountsModel.UserModel{}).Where("user_cpf = ?", cpf).Count(&count)
	if count > 0 {
		return
	}
	hash, err := accountsSvc.HashPassword(password)
	if err != nil {
		log.Printf("seed user %s err: %v", cpf, err)
		return
	}
	user := accountsModel.UserModel{
		UserCPF:       cpf,
		UserFirstName: first,
		UserLastName:  last,
		UserRole:      role,
		UserPassword:  hash,
		UserIsActive:  true,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Printf("seed user %s err: %v", cpf, err)
	}
}

func seedUsers(db *gorm.DB) {
	// CPFs de exemplo com dígitos verificadores válidos
	seedUser(db, "52998224725", "Admin", "Hango", "admin", "admin123")
	seedUser(db, "11144477735", "Equipe", "Cozinha", "staff", "staff123")
	seedUser(db, "16899535009", "Ana", "Souza", "student", "aluno123")
	seedUser(db, "71428793860", "Bruno", "Lima", "student", "aluno123")
}

func seedClasses(db *gorm.DB) {
	var count int64
	db.Model(&classesModel.StudentClassModel{}).Count(&count)
	if count > 0 {
		return
	}
	year := 2026
	class := classesModel.StudentClassModel{
		StudentClassName:     "6º Ano A",
		StudentClassYear:     &year,
		StudentClassDaysMask: weekday.MonFriMask,
		StudentClassIsActive: true,
	}
	if err := db.Create(&class).Error; err != nil {
		log.Printf("seed class err: %v", err)
		return
	}
	// alunos seed entram na turma
	if err := db.Exec(
		`INSERT INTO student_class_members (student_class_id, user_id)
		 SELECT ?, user_id FROM users WHERE user_role = 'student'
		 ON CONFLICT DO NOTHING`,
		class.StudentClassID,
	).Error; err != nil {
		log.Printf("seed class members err: %v", err)
	}
}

func seedMenu(db *gorm.DB) {
	var count int64
	db.Model(&menuModel.CategoryModel{}).Count(&count)
	if count > 0 {
		return
	}

	categories := []string{"Prato Principal", "Bebida", "Sobremesa"}
	items := map[string][]string{
		"Prato Principal": {"Arroz com Frango", "Macarrão à Bolonhesa"},
		"Bebida":          {"Suco de Laranja", "Água"},
		"Sobremesa":       {"Fruta do Dia"},
	}

	for _, name := range categories {
		cat := menuModel.CategoryModel{
			CategoryName: name,
			CategorySlug: menuSvc.Slugify(name),
		}
		if err := db.Create(&cat).Error; err != nil {
			log.Printf("seed category %s err: %v", name, err)
			continue
		}
		for _, itemName := range items[name] {
			id := cat.CategoryID
			item := menuModel.ItemModel{
				ItemName:       itemName,
				ItemCategoryID: &id,
				ItemIsActive:   true,
			}
			if err := db.Create(&item).Error; err != nil {
				log.Printf("seed item %s err: %v", itemName, err)
			}
		}
	}
}
