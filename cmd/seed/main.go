// Command main runs the database seeder for Waypost.
package main

import (
	"flag"
	"log"

	"waypost/internal/config"
	"waypost/internal/database"
	"waypost/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 10, "Number of users to create")
	postsPerUser := flag.Int("posts", 3, "Posts per user")
	commentsPerPost := flag.Int("comments", 4, "Comments per post")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d posts each, %d comments per post, clean=%v\n",
		*numUsers, *postsPerUser, *commentsPerPost, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	if err := seed.Run(db, seed.Options{
		NumUsers:        *numUsers,
		PostsPerUser:    *postsPerUser,
		CommentsPerPost: *commentsPerPost,
		ShouldClean:     *shouldClean,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("All done. Test users share the password: Waypost-Demo-1!")
}
