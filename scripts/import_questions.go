// 从 YAML 题库文件批量导入技能、题目和测验
//
// 用法: go run scripts/import_questions.go -file configs/question_bank.example.yaml
//
// 测验的 created_by 记为 -admin 指定的管理员，默认使用 database.admin_email

package main

import (
	"context"
	"flag"
	"log"
	"os"

	"skill_quiz_backend/internal/config"
	"skill_quiz_backend/internal/model"
	"skill_quiz_backend/internal/repository"
	"skill_quiz_backend/internal/service"
	"skill_quiz_backend/pkg/database"
	"skill_quiz_backend/pkg/logger"
)

func main() {
	configDir := flag.String("config", "configs", "配置文件目录")
	file := flag.String("file", "", "题库 YAML 文件")
	adminEmail := flag.String("admin", "", "测验创建者邮箱")
	flag.Parse()

	if *file == "" {
		log.Fatal("请通过 -file 指定题库文件")
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取题库文件: %v", err)
	}
	bank, err := service.ParseQuestionBank(data)
	if err != nil {
		log.Fatalf("解析题库失败: %v", err)
	}

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	ctx := context.Background()
	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	quizRepo := repository.NewQuizRepository(db)

	email := *adminEmail
	if email == "" {
		email = cfg.Database.AdminEmail
	}
	admin, err := userRepo.FindByEmail(ctx, email)
	if err != nil {
		log.Fatalf("找不到管理员 %s: %v", email, err)
	}
	if admin.Role != model.RoleAdmin {
		log.Fatalf("%s 不是管理员", email)
	}

	importer := service.NewBankImporter(
		service.NewSkillService(skillRepo),
		service.NewQuestionService(questionRepo, skillRepo),
		service.NewQuizService(db, quizRepo, questionRepo),
	)

	log.Println("开始导入题库...")
	summary, err := importer.Import(ctx, &model.Identity{UserID: admin.ID, Email: admin.Email, Role: admin.Role}, bank)
	if err != nil {
		log.Fatalf("导入中断(已导入 技能:%d 题目:%d 测验:%d): %v", summary.Skills, summary.Questions, summary.Quizzes, err)
	}
	log.Printf("完成！新增技能 %d 个，题目 %d 道，测验 %d 套", summary.Skills, summary.Questions, summary.Quizzes)
}
