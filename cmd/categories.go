package cmd

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Lumos-Labs-HQ/stockpanel/internal/forms"
	"github.com/Lumos-Labs-HQ/stockpanel/internal/types"
)

var categoryColumns = []column[types.Category]{
	{"ID", func(c types.Category) string { return strconv.FormatInt(c.ID, 10) }},
	{"NOME", func(c types.Category) string { return c.Name }},
	{"TAMANHO", func(c types.Category) string { return c.Size }},
	{"EMBALAGEM", func(c types.Category) string { return c.Packaging }},
}

var categoriesCmd = &cobra.Command{
	Use:     "categories",
	Aliases: []string{"categorias"},
	Short:   "List and edit categories",
}

var categoriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories page by page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(cmd, types.EntityCategories, categoryColumns)
	},
}

var categoriesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a category",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return saveCategory(cmd, 0)
	},
}

var categoriesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace a category's fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg(args[0])
		if err != nil {
			return err
		}
		return saveCategory(cmd, id)
	},
}

var categoriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete(cmd, types.EntityCategories, args[0], "")
	},
}

func saveCategory(cmd *cobra.Command, id int64) error {
	name, _ := cmd.Flags().GetString("name")
	size, _ := cmd.Flags().GetString("size")
	packaging, _ := cmd.Flags().GetString("packaging")
	in := types.CategoryInput{Name: name, Size: size, Packaging: packaging}

	if err := forms.ValidateCategory(in); err != nil {
		return reportFailure(err, "")
	}

	env, err := loadRuntime()
	if err != nil {
		return err
	}
	ctx, cancel := commandContext()
	defer cancel()

	var saved *types.Category
	if id == 0 {
		saved, err = env.client.CreateCategory(ctx, in)
	} else {
		saved, err = env.client.UpdateCategory(ctx, id, in)
	}
	if err != nil {
		return reportFailure(err, "Erro ao salvar categoria")
	}

	if id == 0 {
		printSaved("criado", saved.ID)
	} else {
		printSaved("atualizado", id)
	}
	return nil
}

func addCategoryFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Category name")
	cmd.Flags().String("size", "", "Size, e.g. Pequeno, Médio, Grande")
	cmd.Flags().String("packaging", "", "Packaging, e.g. Caixa")
}

func init() {
	addListFlags(categoriesListCmd)
	addCategoryFlags(categoriesCreateCmd)
	addCategoryFlags(categoriesUpdateCmd)

	categoriesCmd.AddCommand(categoriesListCmd, categoriesCreateCmd, categoriesUpdateCmd, categoriesDeleteCmd)
}
